package localfs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/closing_tracker/internal/adapters/storage/localfs"
	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_PutDeleteRoundTrip(t *testing.T) {
	root := t.TempDir()
	s, err := localfs.New(root, "https://files.example.com/")
	require.NoError(t, err)

	n, err := s.Put(context.Background(), "txn-1/doc-1/spa.pdf", strings.NewReader("signed"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	data, err := os.ReadFile(filepath.Join(root, "txn-1", "doc-1", "spa.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "signed", string(data))

	f, err := s.Open("txn-1/doc-1/spa.pdf")
	require.NoError(t, err)
	f.Close()

	assert.Equal(t, "https://files.example.com/txn-1/doc-1/spa%20final.pdf", s.DownloadURL("txn-1/doc-1/spa final.pdf"))

	require.NoError(t, s.Delete(context.Background(), "txn-1/doc-1/spa.pdf"))
	require.NoError(t, s.Delete(context.Background(), "txn-1/doc-1/spa.pdf"))

	_, err = s.Open("txn-1/doc-1/spa.pdf")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStorage_RejectsTraversal(t *testing.T) {
	s, err := localfs.New(t.TempDir(), "/files")
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "../escape.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStorage_PutHonoursCancellation(t *testing.T) {
	s, err := localfs.New(t.TempDir(), "/files")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Put(ctx, "txn-1/doc-1/a.txt", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, context.Canceled)
}
