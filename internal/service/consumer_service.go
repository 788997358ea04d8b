package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"examgen-be/internal/dto"
	"examgen-be/internal/entity"
	"examgen-be/internal/repository/specification"
	"examgen-be/internal/repository/unitofwork"
	"examgen-be/pkg/embedding"
	"examgen-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedProblemMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for ProblemId: %s", payload.ProblemId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	prob, err := uow.ProblemRepository().FindOne(ctx, specification.ByID{ID: payload.ProblemId})
	if err != nil {
		log.Printf("[ERROR] Failed to get problem %s: %v", payload.ProblemId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if prob == nil {
		log.Printf("[ERROR] Problem not found: %s", payload.ProblemId)
		msg.Ack() // Problem deleted? Ack.
		return
	}

	content := fmt.Sprintf(`Subject: %s

%s

%s

Final Answer: %s`,
		prob.Subject,
		prob.Stem,
		prob.Explanation,
		prob.FinalAnswer,
	)

	log.Printf("[INFO] Generating embeddings for problem %s (content length: %d)", payload.ProblemId, len(content))

	// ChunkSize 1500 chars with 200 overlap keeps each chunk well under
	// the embedding model's context limit.
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.ProblemEmbedding

	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(ctx, chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of problem %s: %v", i, payload.ProblemId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.ProblemEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Values,
			ProblemId:      prob.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.ProblemEmbeddingRepository().DeleteByProblemId(ctx, prob.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.ProblemEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create bulk embeddings: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Problem indexed: %d chunks for ProblemId: %s", len(newEmbeddings), payload.ProblemId)
	msg.Ack()
}
