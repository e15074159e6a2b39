// Package catalog persists the per-chunk analysis output (keywords, stems,
// region and category tags) for downstream indexing and analytics. The
// catalog is a sink, not a source of truth: the vector store alone decides
// what is retrievable.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"rfp-assist/internal/models"
)

// ChunkRow is one analyzed chunk. List-valued fields are stored JSON-encoded.
type ChunkRow struct {
	bun.BaseModel `bun:"table:chunks,alias:c"`

	ID         int64  `bun:"id,pk,autoincrement"`
	DocID      string `bun:"doc_id,notnull"`
	ChunkIndex int    `bun:"chunk_index,notnull"`
	Text       string `bun:"text,notnull"`
	Normalized string `bun:"normalized,notnull"`
	Keywords   string `bun:"keywords"`
	Stemmed    string `bun:"stemmed"`
	Regions    string `bun:"regions"`
	Categories string `bun:"categories"`
}

type Catalog struct {
	db *bun.DB
}

func Open(path string, debug bool) (*Catalog, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+path+"?cache=shared")
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Init(ctx context.Context) error {
	_, err := c.db.NewCreateTable().Model((*ChunkRow)(nil)).IfNotExists().Exec(ctx)
	return err
}

// ReplaceChunks swaps out all catalog rows for a document. Re-uploading a
// document must not accumulate stale chunks.
func (c *Catalog) ReplaceChunks(ctx context.Context, docID string, chunks []models.Chunk) error {
	return c.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*ChunkRow)(nil)).Where("doc_id = ?", docID).Exec(ctx); err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		rows := make([]ChunkRow, len(chunks))
		for i, chunk := range chunks {
			rows[i] = fromChunk(docID, chunk)
		}
		_, err := tx.NewInsert().Model(&rows).Exec(ctx)
		return err
	})
}

// ChunksByDoc returns a document's chunks ordered by their ordinal index.
func (c *Catalog) ChunksByDoc(ctx context.Context, docID string) ([]models.Chunk, error) {
	var rows []ChunkRow
	err := c.db.NewSelect().
		Model(&rows).
		Where("doc_id = ?", docID).
		Order("chunk_index ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	chunks := make([]models.Chunk, len(rows))
	for i, row := range rows {
		chunks[i] = toChunk(row)
	}
	return chunks, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func fromChunk(docID string, chunk models.Chunk) ChunkRow {
	return ChunkRow{
		DocID:      docID,
		ChunkIndex: chunk.Index,
		Text:       chunk.Text,
		Normalized: chunk.Normalized,
		Keywords:   encodeList(chunk.Keywords),
		Stemmed:    encodeList(chunk.Stemmed),
		Regions:    encodeList(chunk.Regions),
		Categories: encodeList(chunk.Categories),
	}
}

func toChunk(row ChunkRow) models.Chunk {
	return models.Chunk{
		Index:      row.ChunkIndex,
		Text:       row.Text,
		Normalized: row.Normalized,
		Keywords:   decodeList(row.Keywords),
		Stemmed:    decodeList(row.Stemmed),
		Regions:    decodeList(row.Regions),
		Categories: decodeList(row.Categories),
	}
}

func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return string(data)
}

func decodeList(data string) []string {
	var list []string
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil
	}
	return list
}
