package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalczak/menuscan"
	"github.com/jwalczak/menuscan/mock"
	menuslog "github.com/jwalczak/menuscan/slog"
)

func TestLoggingCorpusExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.CorpusExtractor{
		ExtractFn: func(context.Context, *menuscan.Resource) (menuscan.LineCorpus, error) {
			return menuscan.LineCorpus{{Text: "Soup $8"}}, nil
		},
	}

	e := menuslog.NewLoggingCorpusExtractor(inner, logger)
	corpus, err := e.Extract(context.Background(), &menuscan.Resource{URL: "https://example.com/menu"})

	require.NoError(t, err)
	assert.Len(t, corpus, 1)
	output := buf.String()
	assert.Contains(t, output, "corpus extraction")
	assert.Contains(t, output, "url=https://example.com/menu")
	assert.Contains(t, output, "lines=1")
	assert.Contains(t, output, "duration=")
}

func TestLoggingCorpusExtractor_Error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.CorpusExtractor{
		ExtractFn: func(context.Context, *menuscan.Resource) (menuscan.LineCorpus, error) {
			return nil, menuscan.Errorf(menuscan.EEXTRACTION, "undecodable content")
		},
	}

	e := menuslog.NewLoggingCorpusExtractor(inner, logger)
	_, err := e.Extract(context.Background(), &menuscan.Resource{URL: "https://example.com/menu"})

	require.Error(t, err)
	assert.Contains(t, buf.String(), "undecodable content")
}

func TestLoggingVision(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Vision{
		ExtractMenuFn: func(context.Context, []byte, string) (*menuscan.VisionResult, error) {
			return &menuscan.VisionResult{Items: []menuscan.SegmentedItem{{Name: "Soup"}}}, nil
		},
	}

	v := menuslog.NewLoggingVision(inner, logger)
	result, err := v.ExtractMenu(context.Background(), []byte("img"), "image/png")

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	output := buf.String()
	assert.Contains(t, output, "vision extraction")
	assert.Contains(t, output, "items=1")
	assert.Contains(t, output, "bytes=3")
}
