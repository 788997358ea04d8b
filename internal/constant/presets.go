package constant

// Output preset ids.
const (
	PresetExam      = "exam"
	PresetWorksheet = "worksheet"
	PresetFlashcard = "flashcard"
	PresetMockExam  = "mock_exam"
	PresetReport    = "report"
	PresetMinimal   = "minimal"

	DefaultPreset = PresetExam
)

// PresetInstructions holds the format-specific system instruction appended
// to the base LaTeX contract for each output preset.
var PresetInstructions = map[string]string{
	PresetExam: `【出力形式: 試験問題（定期テスト形式）】
以下の構造を厳守してLaTeXを出力してください。

■ 構造ルール:
- \section*{問題} の下に \problem{N} で各問題を列挙（N=問題番号）
- 各問題文の末尾に配点を [XX点] の形式で明記
- 小問がある場合は \begin{enumerate}[(1)] の \item で列挙
- \newpage で問題ページと解答ページを分離
- \section*{解答・解説} の下に \answer{N} で各解答を記載
- 解答には途中式・考え方・ポイントを含める

■ 禁止事項:
- tcolorbox, mdframed, fbox 等のボックス環境
- \begin{tabular}（数表が必要な場合は \begin{array} を使用）
- $$ ... $$ による数式（\[ ... \] を使用）`,

	PresetWorksheet: `【出力形式: 学習プリント（演習ワークシート）】
以下の構造を厳守してLaTeXを出力してください。

■ 構造ルール:
- 冒頭: 名前欄 \underline{\hspace{5cm}} と 日付欄 \underline{\hspace{3cm}} を配置
- 問題は \begin{enumerate}[leftmargin=*] の \item で番号付きリスト
- 各問の直後に \vspace{3cm} または水平線（\noindent\rule{\linewidth}{0.4pt}）で解答スペースを設ける
- \newpage で問題ページと解答ページを分離
- 解答ページは \begin{enumerate} で問題と同じ番号順に解答・解説を記載

■ 禁止事項:
- \problem, \answer 等の独自コマンド（スケルトンに定義されていないもの）
- tcolorbox, mdframed などのボックス環境
- $$ ... $$ による数式（\[ ... \] を使用）`,

	PresetFlashcard: `【出力形式: 一問一答カード（longtable形式）】
以下の「完全なlongtable構造」を厳守してLaTeXを出力してください。

■ 列の役割（絶対厳守）:
- 左列（第1列）: 問題文のみ。解答・ヒントを混在させない。
- 右列（第2列）: 解答のみ。問題文を繰り返さない。

■ 書き方ルール:
- 各データ行の末尾: \\ のみ（スペースや他のコマンドを続けない）
- 各行の後: 必ず \hline を単独行に記載
- セル内の数式: $...$ で囲む（\[...\] はセル内では不可）
- 問題・解答とも1〜2行程度の簡潔な記述

■ 禁止事項:
- \begin{tabular}（longtableのみ使用可）
- \problem, \answer, \section, \newpage
- $$ ... $$ による数式`,

	PresetMockExam: `【出力形式: 模擬試験】
以下の構造を厳守してLaTeXを出力してください。

■ 問題ページ（\section*{問題} 以下）の構造:
1. ヘッダー: {\Large\bfseries 模擬試験} \hfill 制限時間: XX分 \quad 満点: XX点
2. 注意事項（\begin{itemize} で3〜5項目）
3. 大問（\section*{第1問}（XX点） 形式）ごとに:
   - 小問は \begin{enumerate}[(1)] の \item で列挙
   - 各大問の末尾に配点内訳を記載

■ 解答ページ（\section*{解答・解説} 以下）の構造:
- 大問ごとに \answer{N} で区切り
- 配点内訳と採点基準を明記
- 途中式・考え方を詳述

■ 禁止事項:
- tcolorbox, mdframed, fbox 等のボックス環境
- $$ ... $$ による数式（\[ ... \] を使用）`,

	PresetReport: `【出力形式: レポート・解説形式】
以下の構造を厳守してLaTeXを出力してください。

■ 問題ページ（\section*{問題} 以下）:
- \problem{N} で各問題を列挙
- 問題文のみ記載（解答は別ページ）

■ 解説ページ（\section*{解答・解説} 以下）:
各問について \answer{N}、\paragraph{解法}、\paragraph{ポイント} の3部構成で記述。
途中の計算過程を step-by-step で詳述し、align* 環境で式を縦に揃える。

■ 禁止事項:
- tcolorbox, mdframed, fbox 等のボックス環境
- $$ ... $$ による数式（align* や \[ ... \] を使用）
- \paragraph の代わりに \section/\subsection を乱用しない`,

	PresetMinimal: `【出力形式: シンプル形式】
以下の構造を厳守してLaTeXを出力してください。

■ 構造ルール:
- 問題は \begin{enumerate}[leftmargin=*] の \item で番号付きリスト
- 解答は \section*{解答} の下に \begin{enumerate} で番号順に記載
- 装飾なし・コマンド追加なし・最小限の構成

■ 禁止事項:
- \problem, \answer 等の独自コマンド
- tcolorbox, mdframed, fbox 等のボックス環境
- $$ ... $$ による数式（\[ ... \] を使用）`,
}
