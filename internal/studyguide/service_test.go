package studyguide

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emandor/studyhelp_service/internal/ocr"
	"github.com/emandor/studyhelp_service/internal/providers"
	"github.com/emandor/studyhelp_service/internal/study"
)

const cellsReply = "Here you go:\n```json\n" +
	`{"summary":"Cells are...","questions":[{"type":"multiple_choice","question":"What is the powerhouse of the cell?","options":["A) Nucleus","B) Mitochondria","C) Ribosome","D) Golgi"],"correct_answer":"B"}]}` +
	"\n```"

const material = "The cell is the basic unit of life. Mitochondria produce most of the cell's ATP."

type fakeClient struct {
	name  providers.SourceName
	reply string
	err   error

	mu     sync.Mutex
	calls  int
	prompt providers.Prompt
}

func (f *fakeClient) Name() providers.SourceName { return f.name }

func (f *fakeClient) Complete(_ context.Context, p providers.Prompt) (providers.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompt = p
	if f.err != nil {
		return providers.Reply{}, f.err
	}
	return providers.Reply{Text: f.reply, LatencyMs: 12}, nil
}

type memCache struct {
	m    map[string]string
	sets int
}

func newMemCache() *memCache { return &memCache{m: map[string]string{}} }

func (c *memCache) Get(_ context.Context, b []byte) (string, bool) {
	v, ok := c.m[string(b)]
	return v, ok
}

func (c *memCache) Set(_ context.Context, b []byte, text string) error {
	c.sets++
	c.m[string(b)] = text
	return nil
}

type fakeOCR struct {
	text  string
	calls int
}

func (f *fakeOCR) Read(_ context.Context, _ []byte, _ string) (ocr.Result, error) {
	f.calls++
	return ocr.Result{Text: f.text}, nil
}

func TestGenerateUnavailableProviderMakesNoCall(t *testing.T) {
	claude := &fakeClient{name: providers.SourceClaude, reply: cellsReply}
	svc := NewService(providers.NewRegistry(claude), Options{})

	for _, p := range []string{"openai", "mystery", ""} {
		a, err := svc.Generate(context.Background(), material, p)
		require.ErrorIs(t, err, ErrProviderUnavailable, p)
		assert.Equal(t, study.Empty(), a)
		assert.Equal(t, "Selected AI provider ("+p+") is not available. Please check your API keys.", UserMessage(err))
	}
	assert.Zero(t, claude.calls)
}

func TestGenerateCellsScenario(t *testing.T) {
	claude := &fakeClient{name: providers.SourceClaude, reply: cellsReply}
	svc := NewService(providers.NewRegistry(claude), Options{})

	a, err := svc.Generate(context.Background(), material, "Claude")
	require.NoError(t, err)
	assert.Equal(t, 1, claude.calls)
	assert.Contains(t, claude.prompt.User, material)
	assert.Empty(t, claude.prompt.System)

	assert.Equal(t, "Cells are...", a.Summary)
	require.Len(t, a.Questions, 1)
	assert.Equal(t, study.KindMultipleChoice, a.Questions[0].Kind)
	assert.Equal(t, "B", a.Questions[0].CorrectAnswer)
	assert.Len(t, a.Questions[0].Options, 4)
}

func TestGenerateProseReplyFallsBack(t *testing.T) {
	groq := &fakeClient{
		name:  providers.SourceGroq,
		reply: "Photosynthesis converts light to chemical energy.\n\nWhat is chlorophyll?\n\nWhy do leaves change color?",
	}
	svc := NewService(providers.NewRegistry(groq), Options{})

	a, err := svc.Generate(context.Background(), material, "groq")
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light to chemical energy.", a.Summary)
	require.Len(t, a.Questions, 2)
	for _, q := range a.Questions {
		assert.Equal(t, study.KindShortAnswer, q.Kind)
		assert.Equal(t, study.AnswerNotProvided, q.SampleAnswer)
	}
	assert.Equal(t, "What is chlorophyll?", a.Questions[0].Question)
}

func TestGenerateProviderFailure(t *testing.T) {
	openai := &fakeClient{
		name: providers.SourceOpenAI,
		err:  &providers.ProviderError{Provider: providers.SourceOpenAI, Err: errors.New("quota exceeded")},
	}
	svc := NewService(providers.NewRegistry(openai), Options{})

	a, err := svc.Generate(context.Background(), material, "openai")
	require.Error(t, err)
	assert.Equal(t, study.Empty(), a)
	assert.Equal(t, "Error generating content with OpenAI: quota exceeded", UserMessage(err))
}

func TestGenerateBlankContent(t *testing.T) {
	claude := &fakeClient{name: providers.SourceClaude, reply: cellsReply}
	svc := NewService(providers.NewRegistry(claude), Options{})

	a, err := svc.Generate(context.Background(), " \n\t", "claude")
	require.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, study.Empty(), a)
	assert.Zero(t, claude.calls)
	assert.Equal(t, "Please provide some study material.", UserMessage(err))
}

func TestGenerateIsSafeForConcurrentCallers(t *testing.T) {
	claude := &fakeClient{name: providers.SourceClaude, reply: cellsReply}
	svc := NewService(providers.NewRegistry(claude), Options{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := svc.Generate(context.Background(), material, "claude")
			assert.NoError(t, err)
			assert.Len(t, a.Questions, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, claude.calls)
}

func TestExtractPDFUsesCache(t *testing.T) {
	c := newMemCache()
	svc := NewService(providers.NewRegistry(), Options{PDFCache: c})
	b := onePagePDF("Osmosis moves water")

	txt, err := svc.ExtractPDF(context.Background(), b)
	require.NoError(t, err)
	assert.Contains(t, txt, "Osmosis moves water")
	assert.Equal(t, 1, c.sets)

	again, err := svc.ExtractPDF(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, txt, again)
	assert.Equal(t, 1, c.sets)
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	svc := NewService(providers.NewRegistry(), Options{})

	txt, err := svc.ExtractPDF(context.Background(), []byte("not a pdf"))
	require.ErrorIs(t, err, ErrExtraction)
	assert.Empty(t, txt)
	assert.Equal(t, "Could not extract text from the uploaded file. Please try a different file.", UserMessage(err))
}

func TestExtractImage(t *testing.T) {
	reader := &fakeOCR{text: "  Newton's first law  "}
	c := newMemCache()
	svc := NewService(providers.NewRegistry(), Options{OCR: reader, ImageCache: c, OCRMaxW: 800, OCRQuality: 70})
	b := tinyPNG(t)

	txt, err := svc.ExtractImage(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "Newton's first law", txt)

	_, err = svc.ExtractImage(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, 1, reader.calls)
}

func TestExtractImageWithoutEngine(t *testing.T) {
	svc := NewService(providers.NewRegistry(), Options{})
	_, err := svc.ExtractImage(context.Background(), tinyPNG(t))
	assert.ErrorIs(t, err, ErrExtraction)
	assert.ErrorIs(t, err, ocr.ErrEngineUnavailable)
}

func TestUserMessageFallback(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Something went wrong: boom", UserMessage(errors.New("boom")))
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	m := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		m.Set(x, x, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, m))
	return buf.Bytes()
}

func onePagePDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}
