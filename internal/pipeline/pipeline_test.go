// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/redact-studio/internal/acquire"
	"github.com/pdiddy/redact-studio/internal/httputil"
	"github.com/pdiddy/redact-studio/internal/testutil"
	"github.com/pdiddy/redact-studio/pkg/types"
)

// fakePoster records requests and answers with a fixed response.
type fakePoster struct {
	calls       int32
	resp        *httputil.Response
	err         error
	gotPath     string
	gotType     string
	gotBody     []byte
	block       chan struct{} // when set, Post waits for it to close
	entered     chan struct{} // when set, closed on first entry
	enteredOnce sync.Once
}

func (f *fakePoster) Post(_ context.Context, path string, body io.Reader, contentType string) (*httputil.Response, error) {
	atomic.AddInt32(&f.calls, 1)
	f.gotPath = path
	f.gotType = contentType
	f.gotBody, _ = io.ReadAll(body)
	if f.entered != nil {
		f.enteredOnce.Do(func() { close(f.entered) })
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func jsonResponse(status int, body string) *httputil.Response {
	return &httputil.Response{StatusCode: status, ContentType: "application/json", Body: []byte(body), RequestID: "req-1"}
}

func pngArtifact(name string) *types.Artifact {
	return &types.Artifact{Name: name, MediaType: "image/png", Data: append([]byte(nil), testutil.PNGHeader...), Origin: types.OriginFilePicker}
}

func pdfArtifact(name string) *types.Artifact {
	return &types.Artifact{Name: name, MediaType: types.MediaTypePDF, Data: testutil.MinimalPDF(2), Origin: types.OriginDrop}
}

func TestNewPipelineIsEmpty(t *testing.T) {
	p := New(types.ProfileRedactImage, &fakePoster{})
	assert.Equal(t, StateEmpty, p.State())
	assert.Nil(t, p.Artifact())
	assert.Nil(t, p.Result())
	assert.False(t, p.Busy())
}

func TestAcquire_MatchingTypes(t *testing.T) {
	tests := []struct {
		name     string
		profile  types.Profile
		artifact *types.Artifact
	}{
		{"text", types.ProfileAnalyze, acquire.FromText("John Smith, john@example.com")},
		{"image", types.ProfileRedactImage, pngArtifact("card.png")},
		{"jpeg", types.ProfileRedactImage, &types.Artifact{Name: "a.jpg", MediaType: "image/jpeg", Data: testutil.JPEGHeader}},
		{"pdf", types.ProfileRedactPDF, pdfArtifact("report.pdf")},
		{"pdf encrypt", types.ProfileEncryptPDF, pdfArtifact("report.pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.profile, &fakePoster{})
			require.NoError(t, p.Acquire(tt.artifact))
			assert.Equal(t, StateAcquired, p.State())

			held := p.Artifact()
			require.NotNil(t, held)
			assert.Equal(t, tt.artifact.Data, held.Data)
			assert.Equal(t, tt.artifact.Name, held.Name)

			pv, err := p.Preview()
			require.NoError(t, err)
			switch pv.Kind {
			case types.KindImage:
				data, mt, err := acquire.DecodeDataURL(pv.DataURL)
				require.NoError(t, err)
				assert.Equal(t, tt.artifact.Data, data)
				assert.Equal(t, tt.artifact.MediaType, mt)
			case types.KindText:
				assert.Equal(t, string(tt.artifact.Data), pv.Text)
			case types.KindPDF:
				assert.Equal(t, 2, pv.Pages)
			}
		})
	}
}

func TestAcquire_CopiesData(t *testing.T) {
	p := New(types.ProfileRedactImage, &fakePoster{})
	a := pngArtifact("card.png")
	require.NoError(t, p.Acquire(a))
	a.Data[0] = 0x00
	assert.Equal(t, testutil.PNGHeader, p.Artifact().Data)
}

func TestAcquire_MismatchLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name     string
		profile  types.Profile
		prior    *types.Artifact
		rejected *types.Artifact
	}{
		{"pdf on image page, empty", types.ProfileRedactImage, nil, pdfArtifact("x.pdf")},
		{"pdf on image page, held", types.ProfileRedactImage, pngArtifact("a.png"), pdfArtifact("x.pdf")},
		{"image on pdf page", types.ProfileRedactPDF, pdfArtifact("a.pdf"), pngArtifact("b.png")},
		{"image on text page", types.ProfileAnalyze, acquire.FromText("hello"), pngArtifact("b.png")},
		{"json on text page", types.ProfileAnalyze, nil, &types.Artifact{Name: "a.json", MediaType: "application/json", Data: []byte("{}")}},
		{"image on encrypt page", types.ProfileEncryptPDF, nil, pngArtifact("b.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.profile, &fakePoster{})
			wantState := StateEmpty
			if tt.prior != nil {
				require.NoError(t, p.Acquire(tt.prior))
				wantState = StateAcquired
			}
			before := p.Artifact()

			err := p.Acquire(tt.rejected)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Contains(t, ve.Message, MsgInvalidFileType)

			assert.Equal(t, wantState, p.State())
			assert.Same(t, before, p.Artifact())
		})
	}
}

func TestAcquire_UnreadablePDF(t *testing.T) {
	p := New(types.ProfileRedactPDF, &fakePoster{})
	err := p.Acquire(&types.Artifact{Name: "bad.pdf", MediaType: types.MediaTypePDF, Data: []byte("%PDF-1.4 junk")})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Message, "not a readable PDF")
	assert.Equal(t, StateEmpty, p.State())
}

func TestAcquire_Nil(t *testing.T) {
	p := New(types.ProfileRedactPDF, &fakePoster{})
	var ve *ValidationError
	require.True(t, errors.As(p.Acquire(nil), &ve))
	assert.Equal(t, MsgNoFile, ve.Message)
}

func TestAcquire_ClearsPriorResult(t *testing.T) {
	fp := &fakePoster{resp: &httputil.Response{StatusCode: 200, ContentType: "image/png", Body: []byte("redacted")}}
	p := New(types.ProfileRedactImage, fp)
	require.NoError(t, p.Acquire(pngArtifact("a.png")))
	_, err := p.Submit(context.Background(), types.Options{})
	require.NoError(t, err)
	require.NotNil(t, p.Result())

	require.NoError(t, p.Acquire(pngArtifact("b.png")))
	assert.Nil(t, p.Result())
	assert.Equal(t, StateAcquired, p.State())
}

func TestSubmit_NoArtifactSkipsNetwork(t *testing.T) {
	for _, profile := range []types.Profile{types.ProfileAnalyze, types.ProfileRedactImage, types.ProfileRedactPDF, types.ProfileEncryptPDF} {
		t.Run(profile.Name, func(t *testing.T) {
			fp := &fakePoster{}
			p := New(profile, fp)
			res, err := p.Submit(context.Background(), types.Options{Password: "pw"})
			assert.Nil(t, res)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, int32(0), atomic.LoadInt32(&fp.calls))
			assert.Equal(t, StateEmpty, p.State())
		})
	}
}

func TestSubmit_BlankTextSkipsNetwork(t *testing.T) {
	fp := &fakePoster{}
	p := New(types.ProfileAnalyze, fp)
	require.NoError(t, p.Acquire(acquire.FromText("   ")))

	_, err := p.Submit(context.Background(), types.Options{})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, MsgNoText, ve.Message)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fp.calls))
}

func TestSubmit_MalformedOptionSkipsNetwork(t *testing.T) {
	fp := &fakePoster{}
	p := New(types.ProfileRedactPDF, fp)
	require.NoError(t, p.Acquire(pdfArtifact("a.pdf")))

	_, err := p.Submit(context.Background(), types.Options{ScoreThreshold: "abc"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "score_threshold", ve.Field)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fp.calls))
	assert.Equal(t, StateAcquired, p.State())
}

func TestSubmit_ConcurrentSecondCallIsRejected(t *testing.T) {
	fp := &fakePoster{
		resp:    jsonResponse(200, `{"PERSON": 1}`),
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	p := New(types.ProfileAnalyze, fp)
	require.NoError(t, p.Acquire(acquire.FromText("John")))

	done := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), types.Options{})
		done <- err
	}()
	<-fp.entered
	assert.True(t, p.Busy())

	res, err := p.Submit(context.Background(), types.Options{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrBusy)

	close(fp.block)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fp.calls))
	assert.Equal(t, StateSucceeded, p.State())
}

func TestSubmit_JSONSuccess(t *testing.T) {
	fp := &fakePoster{resp: jsonResponse(200, `{"PERSON": 2, "EMAIL_ADDRESS": 1}`)}
	p := New(types.ProfileAnalyze, fp)
	require.NoError(t, p.Acquire(acquire.FromText("John and Jane, john@example.com")))

	res, err := p.Submit(context.Background(), types.Options{Language: "EN"})
	require.NoError(t, err)

	assert.Equal(t, types.ResultJSON, res.Kind)
	assert.JSONEq(t, `{"PERSON": 2, "EMAIL_ADDRESS": 1}`, string(res.Data))
	assert.Equal(t, "/analyze", fp.gotPath)
	assert.Equal(t, "application/json", fp.gotType)
	assert.JSONEq(t, `{"text": "John and Jane, john@example.com", "language": "en"}`, string(fp.gotBody))
	assert.Equal(t, StateSucceeded, p.State())
	assert.Same(t, res, p.Result())
}

func TestSubmit_ServiceErrorMessageVerbatim(t *testing.T) {
	fp := &fakePoster{resp: jsonResponse(400, `{"error": "invalid language"}`)}
	p := New(types.ProfileAnalyze, fp)
	require.NoError(t, p.Acquire(acquire.FromText("hello")))

	res, err := p.Submit(context.Background(), types.Options{})
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "invalid language", se.Message)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)

	require.NotNil(t, res)
	assert.Equal(t, types.ResultFailed, res.Kind)
	assert.Equal(t, "invalid language", res.Message)
	assert.Equal(t, StateFailed, p.State())
}

func TestSubmit_BlobErrorBodyIsParsed(t *testing.T) {
	fp := &fakePoster{resp: &httputil.Response{
		StatusCode:  500,
		ContentType: "application/octet-stream",
		Body:        []byte(`{"error": "OCR engine unavailable"}`),
	}}
	p := New(types.ProfileRedactImage, fp)
	require.NoError(t, p.Acquire(pngArtifact("a.png")))

	res, err := p.Submit(context.Background(), types.Options{})
	require.Error(t, err)
	assert.Equal(t, "OCR engine unavailable", res.Message)
}

func TestSubmit_UnparseableErrorGetsGenericMessage(t *testing.T) {
	fp := &fakePoster{resp: &httputil.Response{StatusCode: 502, ContentType: "text/html", Body: []byte("<h1>Bad Gateway</h1>")}}
	p := New(types.ProfileRedactImage, fp)
	require.NoError(t, p.Acquire(pngArtifact("a.png")))

	res, err := p.Submit(context.Background(), types.Options{})
	require.Error(t, err)
	assert.Equal(t, httputil.GenericErrorMessage, res.Message)
}

func TestSubmit_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	fp := &fakePoster{err: boom}
	p := New(types.ProfileRedactImage, fp)
	require.NoError(t, p.Acquire(pngArtifact("a.png")))

	res, err := p.Submit(context.Background(), types.Options{})
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Zero(t, se.StatusCode)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, types.ResultFailed, res.Kind)
	assert.Equal(t, StateFailed, p.State())

	// The user can retry right away.
	fp.err = nil
	fp.resp = &httputil.Response{StatusCode: 200, ContentType: "image/png", Body: []byte("ok")}
	_, err = p.Submit(context.Background(), types.Options{})
	require.NoError(t, err)
	assert.Equal(t, StateSucceeded, p.State())
}

func TestSubmit_AnalyzeRejectsBinarySuccess(t *testing.T) {
	fp := &fakePoster{resp: &httputil.Response{StatusCode: 200, ContentType: "text/html", Body: []byte("<html>")}}
	p := New(types.ProfileAnalyze, fp)
	require.NoError(t, p.Acquire(acquire.FromText("hello")))

	res, err := p.Submit(context.Background(), types.Options{})
	require.Error(t, err)
	assert.Equal(t, MsgUnparseable, res.Message)
}

func TestSubmit_StaleResultDropped(t *testing.T) {
	fp := &fakePoster{
		resp:    jsonResponse(200, `{"PERSON": 1}`),
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	p := New(types.ProfileAnalyze, fp)
	require.NoError(t, p.Acquire(acquire.FromText("John")))

	done := make(chan *types.Result, 1)
	go func() {
		res, _ := p.Submit(context.Background(), types.Options{})
		done <- res
	}()
	<-fp.entered
	p.Clear()
	close(fp.block)

	res := <-done
	require.NotNil(t, res)
	assert.Equal(t, StateEmpty, p.State())
	assert.Nil(t, p.Result())
}

func TestBusy_SurvivesReacquireMidFlight(t *testing.T) {
	fp := &fakePoster{
		resp:    jsonResponse(200, `{"PERSON": 1}`),
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	p := New(types.ProfileAnalyze, fp)
	require.NoError(t, p.Acquire(acquire.FromText("John")))

	done := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), types.Options{})
		done <- err
	}()
	<-fp.entered

	require.NoError(t, p.Acquire(acquire.FromText("Jane")))
	assert.Equal(t, StateAcquired, p.State())
	assert.True(t, p.Busy())

	_, err := p.Submit(context.Background(), types.Options{})
	assert.ErrorIs(t, err, ErrBusy)

	close(fp.block)
	require.NoError(t, <-done)
	assert.False(t, p.Busy())
	assert.Equal(t, StateAcquired, p.State())
	assert.Equal(t, int32(1), atomic.LoadInt32(&fp.calls))
}

func TestBinarySuccessAndDownload(t *testing.T) {
	fp := &fakePoster{resp: &httputil.Response{StatusCode: 200, ContentType: types.MediaTypePDF, Body: []byte("%PDF-redacted")}}
	p := New(types.ProfileRedactPDF, fp)
	require.NoError(t, p.Acquire(pdfArtifact("quarterly report.pdf")))

	res, err := p.Submit(context.Background(), types.Options{})
	require.NoError(t, err)
	assert.Equal(t, types.ResultBinary, res.Kind)
	assert.Equal(t, "quarterly report.pdf", res.SourceName)

	dir := t.TempDir()
	path, err := p.Download(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "redacted_quarterly report.pdf"), path)
	assert.Equal(t, ".pdf", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-redacted"), data)
}

func TestDownload_JSONWritesRenderedCopy(t *testing.T) {
	fp := &fakePoster{resp: jsonResponse(200, `{"PERSON":2}`)}
	p := New(types.ProfileAnalyze, fp)
	require.NoError(t, p.Acquire(acquire.FromText("John")))
	_, err := p.Submit(context.Background(), types.Options{})
	require.NoError(t, err)

	path, err := p.Download(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, AnalysisFileName, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"PERSON\": 2\n}\n", string(data))
}

func TestDownload_NothingToSave(t *testing.T) {
	p := New(types.ProfileRedactPDF, &fakePoster{})
	_, err := p.Download(t.TempDir())
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = SaveResult(&types.Result{Kind: types.ResultFailed}, "", t.TempDir())
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestClear_FromEveryState(t *testing.T) {
	setups := map[string]func(p *Pipeline, fp *fakePoster){
		"empty": func(p *Pipeline, fp *fakePoster) {},
		"acquired": func(p *Pipeline, fp *fakePoster) {
			require.NoError(t, p.Acquire(pngArtifact("a.png")))
		},
		"succeeded": func(p *Pipeline, fp *fakePoster) {
			fp.resp = &httputil.Response{StatusCode: 200, ContentType: "image/png", Body: []byte("x")}
			require.NoError(t, p.Acquire(pngArtifact("a.png")))
			_, err := p.Submit(context.Background(), types.Options{})
			require.NoError(t, err)
		},
		"failed": func(p *Pipeline, fp *fakePoster) {
			fp.resp = jsonResponse(400, `{"error":"nope"}`)
			require.NoError(t, p.Acquire(pngArtifact("a.png")))
			_, err := p.Submit(context.Background(), types.Options{})
			require.Error(t, err)
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			fp := &fakePoster{}
			p := New(types.ProfileRedactImage, fp)
			setup(p, fp)

			p.Clear()
			p.Clear()
			assert.Equal(t, StateEmpty, p.State())
			assert.Nil(t, p.Artifact())
			assert.Nil(t, p.Result())

			_, err := p.Preview()
			assert.ErrorIs(t, err, ErrNoArtifact)
		})
	}
}

func TestWithPDFInspector(t *testing.T) {
	p := New(types.ProfileRedactPDF, &fakePoster{}, WithPDFInspector(func(b []byte) (int, error) {
		return 7, nil
	}))
	require.NoError(t, p.Acquire(&types.Artifact{Name: "x.pdf", MediaType: types.MediaTypePDF, Data: []byte("%PDF-")}))
	assert.Equal(t, 7, p.Artifact().Pages)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "unknown", State(42).String())
}
