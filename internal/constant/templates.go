package constant

// DefaultTemplateName is seeded on first migration so a fresh install can
// generate without creating a template first.
const DefaultTemplateName = "standard"

// DefaultTemplateBody supports the placeholders the render engine knows:
// {subject} {difficulty} {num_questions} {doc_snippets} {rag_summary}
// {chunk_count} {difficulty_score} {difficulty_level} {trickiness}
// {source_text}.
const DefaultTemplateBody = `{subject} の問題を {num_questions} 問、難易度「{difficulty}」で作成してください。

各問題には以下を含めてください:
- 問題文（明確かつ自己完結であること）
- 解答への道筋（途中式を含む）
- 解説（つまずきやすいポイントを指摘）
- 最終解答

参考資料（{chunk_count} 件）:
{rag_summary}

類題の例:
{doc_snippets}`
