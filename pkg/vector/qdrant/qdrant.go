// Package qdrant provides a vector driver backed by a Qdrant collection over
// gRPC.
package qdrant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qdrant/go-client/qdrant"

	"github.com/papercomputeco/pixelo/pkg/logger"
	"github.com/papercomputeco/pixelo/pkg/vector"
)

const (
	// DefaultCollection is used when Config.Collection is empty.
	DefaultCollection = "pixelo_words"

	// DefaultPort is Qdrant's gRPC port.
	DefaultPort = 6334

	wordKey = "word"
)

// Config holds configuration for the Qdrant driver.
type Config struct {
	Host       string
	Port       int
	APIKey     string
	Collection string

	// Dimensions sizes the collection when it has to be created.
	Dimensions uint64
}

// Driver implements vector.Driver on a Qdrant collection using cosine
// distance. Point IDs are corpus indices.
type Driver struct {
	client     *qdrant.Client
	collection string
	logger     *slog.Logger
}

// NewDriver connects to Qdrant and creates the collection if it is missing.
func NewDriver(ctx context.Context, c Config, l *slog.Logger) (*Driver, error) {
	if l == nil {
		l = logger.Nop()
	}
	if c.Host == "" {
		return nil, errors.New("qdrant host is required")
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   c.Host,
		Port:   c.Port,
		APIKey: c.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vector.ErrConnection, err)
	}

	d := &Driver{client: client, collection: c.Collection, logger: l}
	if err := d.ensureCollection(ctx, c.Dimensions); err != nil {
		client.Close()
		return nil, err
	}

	l.Info("qdrant vector driver initialized",
		"host", c.Host,
		"port", c.Port,
		"collection", c.Collection,
	)
	return d, nil
}

func (d *Driver) ensureCollection(ctx context.Context, dims uint64) error {
	exists, err := d.client.CollectionExists(ctx, d.collection)
	if err != nil {
		return fmt.Errorf("%w: checking collection %s: %v", vector.ErrConnection, d.collection, err)
	}
	if exists {
		return nil
	}
	if dims == 0 {
		return fmt.Errorf("collection %s does not exist and no dimensions were configured", d.collection)
	}

	err = d.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: d.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dims,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", d.collection, err)
	}
	return nil
}

// Add upserts documents as points.
func (d *Driver) Add(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(docs))
	for i, doc := range docs {
		points[i] = toPoint(doc)
	}

	_, err := d.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: d.collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting %d points: %w", len(points), err)
	}

	d.logger.Debug("added documents to qdrant", "count", len(docs))
	return nil
}

// Query returns the topK most similar points.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	hits, err := d.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: d.collection,
		Query:          qdrant.NewQueryDense(embedding),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("querying qdrant: %w", err)
	}

	results := make([]vector.QueryResult, 0, len(hits))
	for _, h := range hits {
		results = append(results, fromScoredPoint(h))
	}
	return results, nil
}

// Close closes the gRPC connection.
func (d *Driver) Close() error {
	return d.client.Close()
}

func toPoint(doc vector.Document) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(doc.ID)),
		Vectors: qdrant.NewVectorsDense(doc.Embedding),
		Payload: qdrant.NewValueMap(map[string]any{wordKey: doc.Word}),
	}
}

func fromScoredPoint(p *qdrant.ScoredPoint) vector.QueryResult {
	r := vector.QueryResult{Score: p.GetScore()}
	r.ID = uint32(p.GetId().GetNum())
	if v, ok := p.GetPayload()[wordKey]; ok {
		r.Word = v.GetStringValue()
	}
	return r
}
