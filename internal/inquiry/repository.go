package inquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/AlHayahDevelopments/property-inquiry/internal/utils"
)

const idTimeLayout = "20060102_150405"

// RecordHandle identifica um registro gravado.
type RecordHandle struct {
	ID   string
	Path string
}

// Repository grava submissões. Só cria; nunca lê, altera ou remove.
type Repository interface {
	Persist(ctx context.Context, s Submission) (RecordHandle, error)
}

type fileRepository struct {
	dir string
	now func() time.Time
}

type RepositoryOption func(*fileRepository)

// WithClock troca o relógio usado para gerar o ID (testes).
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *fileRepository) { r.now = now }
}

// NewFileRepository grava um arquivo JSON por submissão dentro de dir.
func NewFileRepository(dir string, opts ...RepositoryOption) Repository {
	r := &fileRepository{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordID junta timestamp (segundos) e nome sanitizado. O mesmo cliente no
// mesmo segundo gera o mesmo ID e sobrescreve o arquivo anterior.
func RecordID(at time.Time, clientName string) string {
	return at.Format(idTimeLayout) + "_" + utils.SanitizeName(clientName)
}

func (r *fileRepository) Persist(ctx context.Context, s Submission) (RecordHandle, error) {
	if err := ctx.Err(); err != nil {
		return RecordHandle{}, &StorageError{Op: "persist", Path: r.dir, Err: err}
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return RecordHandle{}, &StorageError{Op: "mkdir", Path: r.dir, Err: err}
	}

	id := RecordID(r.now(), s.ClientName)
	path := filepath.Join(r.dir, id+".json")

	body, err := EncodeRecord(s.Record())
	if err != nil {
		return RecordHandle{}, &StorageError{Op: "encode", Path: path, Err: err}
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return RecordHandle{}, &StorageError{Op: "write", Path: path, Err: err}
	}

	return RecordHandle{ID: id, Path: path}, nil
}

// EncodeRecord gera o JSON do registro: chaves na ordem dos campos,
// indentação de 4 espaços, sem escape de HTML ("Core & Shell").
func EncodeRecord(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
