package service

import (
	"context"

	"examgen-be/internal/dto"
	"examgen-be/internal/repository/unitofwork"
	"examgen-be/pkg/embedding"
)

type ISearchService interface {
	Retrieve(ctx context.Context, req *dto.RetrieveRequest) (*dto.RetrieveResponse, error)
}

type searchService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	// threshold drops chunks whose cosine similarity is too low to be a
	// useful reference.
	threshold float64
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider) ISearchService {
	return &searchService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		threshold:         0.3,
	}
}

func (s *searchService) Retrieve(ctx context.Context, req *dto.RetrieveRequest) (*dto.RetrieveResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = 5
	}

	res, err := s.embeddingProvider.Generate(ctx, req.Query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ProblemEmbeddingRepository().SearchSimilarWithScore(ctx, res.Values, topK, s.threshold)
	if err != nil {
		return nil, err
	}

	out := &dto.RetrieveResponse{
		ChunkCount: len(scored),
		Retrieved:  make([]dto.RetrievedSnippet, len(scored)),
	}
	for i, sc := range scored {
		out.Retrieved[i] = dto.RetrievedSnippet{
			Text:  sc.Embedding.Document,
			Score: sc.Similarity,
		}
	}
	return out, nil
}
