// Package mdsource extracts Python fenced code blocks from Markdown documents.
package mdsource

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/pyhl/pkg/langdetect"
)

// Block is one Python code block.
type Block struct {
	// Info is the fence info string, empty for unlabeled blocks.
	Info string

	// StartLine is the 0-based Markdown line of the first code line.
	StartLine int

	// Lines holds the code without fence lines or trailing newlines.
	Lines []string
}

// Options controls extraction.
type Options struct {
	// DetectUnlabeled includes unlabeled fences whose content langdetect identifies as Python.
	DetectUnlabeled bool
}

// Extractor finds Python blocks in Markdown.
type Extractor struct {
	md   goldmark.Markdown
	opts Options
}

// New creates an extractor that parses GitHub Flavored Markdown.
func New(opts Options) *Extractor {
	return &Extractor{
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		opts: opts,
	}
}

// Extract returns the Python blocks of content in document order.
func (e *Extractor) Extract(ctx context.Context, content []byte) ([]Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	doc := e.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	lineStarts := lineOffsets(content)

	var blocks []Block
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		block, ok := e.block(fence, content, lineStarts)
		if ok {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}
	return blocks, nil
}

func (e *Extractor) block(fence *ast.FencedCodeBlock, source []byte, lineStarts []int) (Block, bool) {
	segs := fence.Lines()
	if segs.Len() == 0 {
		return Block{}, false
	}

	info := ""
	if fence.Info != nil {
		info = strings.TrimSpace(string(fence.Info.Segment.Value(source)))
	}

	lines := make([]string, segs.Len())
	var raw bytes.Buffer
	for i := range segs.Len() {
		seg := segs.At(i)
		value := seg.Value(source)
		raw.Write(value)
		lines[i] = strings.TrimRight(string(value), "\r\n")
	}

	switch {
	case info != "":
		if !langdetect.IsPythonFence(info) {
			return Block{}, false
		}
	case !e.opts.DetectUnlabeled || !langdetect.DetectSnippet(raw.Bytes()).IsPython():
		return Block{}, false
	}

	return Block{
		Info:      info,
		StartLine: lineOf(lineStarts, segs.At(0).Start),
		Lines:     lines,
	}, true
}

// lineOffsets returns the byte offset where each line starts.
func lineOffsets(content []byte) []int {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineOf returns the 0-based line containing offset.
func lineOf(starts []int, offset int) int {
	lo, hi := 0, len(starts)
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
