package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	return &text.GoTextFace{Source: source, Size: 22}
}

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	font := newTestFace(t)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
	}{
		{
			name:      "短文本不换行",
			input:     "Library",
			maxWidth:  1000,
			expectMin: 1,
		},
		{
			name:      "长文本自动换行",
			input:     "The library holds over two hundred thousand volumes and is open until midnight during exam season.",
			maxWidth:  300,
			expectMin: 2,
		},
		{
			name:      "空文本",
			input:     "",
			maxWidth:  100,
			expectMin: 1,
		},
		{
			name:      "换行符断行",
			input:     "Opening hours\nMon-Fri 8:00-22:00",
			maxWidth:  1000,
			expectMin: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, font, tt.maxWidth)

			if len(lines) < tt.expectMin {
				t.Errorf("期望至少 %d 行，实际得到 %d 行", tt.expectMin, len(lines))
			}

			for i, line := range lines {
				if tt.input != "" && measureTextWidth(line, font) > tt.maxWidth {
					t.Errorf("第 %d 行 %q 超过最大宽度 %.0f", i+1, line, tt.maxWidth)
				}
			}
		})
	}
}

// 换行只发生在单词之间，不丢失内容
func TestWrapTextKeepsWords(t *testing.T) {
	font := newTestFace(t)
	input := "Welcome to the reception desk where visitors sign in"

	lines := WrapText(input, font, 200)
	if got := strings.Join(lines, " "); got != input {
		t.Errorf("重新拼接后 = %q, want %q", got, input)
	}
}

// 超宽单词按字符强制断行
func TestWrapTextBreaksLongWord(t *testing.T) {
	font := newTestFace(t)
	input := strings.Repeat("W", 40)

	lines := WrapText(input, font, 120)
	if len(lines) < 2 {
		t.Fatalf("期望强制断行，实际得到 %d 行", len(lines))
	}
	if got := strings.Join(lines, ""); got != input {
		t.Errorf("拼接后 = %q, want %q", got, input)
	}
}

// TestWrapTextEdgeCases 测试边界情况
func TestWrapTextEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		font     *text.GoTextFace
		maxWidth float64
		wantLen  int
	}{
		{
			name:     "nil font",
			input:    "Cafe",
			font:     nil,
			maxWidth: 100,
			wantLen:  1, // 返回原文本
		},
		{
			name:     "zero maxWidth",
			input:    "Cafe",
			font:     &text.GoTextFace{Size: 22},
			maxWidth: 0,
			wantLen:  1,
		},
		{
			name:     "negative maxWidth",
			input:    "Cafe",
			font:     &text.GoTextFace{Size: 22},
			maxWidth: -100,
			wantLen:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, tt.font, tt.maxWidth)
			if len(lines) != tt.wantLen {
				t.Errorf("期望 %d 行，实际得到 %d 行", tt.wantLen, len(lines))
			}
		})
	}
}
