package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-prep-api/internal/documents"
	"interview-prep-api/internal/events"
	"interview-prep-api/internal/llm"
	"interview-prep-api/internal/shared/storage/object/objecttest"
)

func TestTailorStoresEnvelopeAndPublishes(t *testing.T) {
	store := objecttest.New()
	svc, completer, pub := newService(store, tailoredReply, nil)

	res, err := svc.Tailor(context.Background(), TailorInput{
		ResumeData:     json.RawMessage(originalResume),
		JobDescription: "Senior Go engineer, AWS",
		CompanyName:    "Babbage & Co",
		RoleTitle:      "Senior Go Engineer",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NotNil(t, res.S3URL)
	require.NotNil(t, res.Key)
	assert.Equal(t, "tailored-resumes/1714564800000-senior-go-engineer.json", *res.Key)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", res.Metadata.CreatedAt)
	assert.Contains(t, res.Document, "EXPERIENCE")
	assert.Contains(t, completer.user[0], "Senior Go engineer, AWS")
	assert.Equal(t, llm.TailorPrompt(), completer.system[0])

	obj, err := store.Get(context.Background(), *res.Key)
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(obj.Body, &env))
	assert.Equal(t, "Babbage & Co", env.CompanyName)
	assert.JSONEq(t, originalResume, string(env.OriginalResume))
	assert.Equal(t, res.Document, env.Document)
	assert.Equal(t, "Ada Lovelace", env.TailoredResume.ContactInfo.Name)

	published := pub.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeResumeTailored, published[0].Type)
	assert.Equal(t, *res.Key, published[0].ObjectKey)
}

func TestTailorKeyStampMatchesCreatedAt(t *testing.T) {
	store := objecttest.New()
	svc, _, _ := newService(store, tailoredReply, nil)
	clock := fixedNow
	svc.Now = func() time.Time {
		clock = clock.Add(7 * time.Millisecond)
		return clock
	}

	res, err := svc.Tailor(context.Background(), TailorInput{
		ResumeData:     json.RawMessage(originalResume),
		JobDescription: "Go engineer",
		RoleTitle:      "Engineer",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Key)

	created, err := time.Parse(time.RFC3339Nano, res.Metadata.CreatedAt)
	require.NoError(t, err)
	stamp, ok := documents.KeyTime(*res.Key)
	require.True(t, ok)
	assert.Equal(t, created.UnixMilli(), stamp.UnixMilli())
}

func TestTailorSucceedsWhenStoreFails(t *testing.T) {
	store := objecttest.New()
	store.PutErr = errors.New("connection refused")
	svc, _, pub := newService(store, tailoredReply, nil)

	res, err := svc.Tailor(context.Background(), TailorInput{
		ResumeData:     json.RawMessage(originalResume),
		JobDescription: "Go engineer",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.S3URL)
	assert.Equal(t, "Ada Lovelace", res.TailoredResume.ContactInfo.Name)
	assert.Contains(t, res.StorageWarning, "connection refused")
	assert.Empty(t, pub.Events())
}

func TestTailorWithoutStoreReturnsNullURL(t *testing.T) {
	svc, _, _ := newService(nil, tailoredReply, nil)
	svc.Docs.Store = nil

	res, err := svc.Tailor(context.Background(), TailorInput{
		ResumeData:     json.RawMessage(originalResume),
		JobDescription: "Go engineer",
	})
	require.NoError(t, err)
	assert.Nil(t, res.S3URL)
	assert.True(t, res.Success)
}

func TestTailorValidation(t *testing.T) {
	svc, completer, _ := newService(objecttest.New(), tailoredReply, nil)

	cases := []TailorInput{
		{JobDescription: "jd"},
		{ResumeData: json.RawMessage(`null`), JobDescription: "jd"},
		{ResumeData: json.RawMessage(originalResume), JobDescription: "   "},
	}
	for _, in := range cases {
		_, err := svc.Tailor(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Empty(t, completer.user, "generation must not run for invalid input")
}

func TestTailorGenerationFailures(t *testing.T) {
	in := TailorInput{ResumeData: json.RawMessage(originalResume), JobDescription: "jd"}

	svc, _, _ := newService(objecttest.New(), "", errors.New("upstream 500"))
	_, err := svc.Tailor(context.Background(), in)
	assert.ErrorIs(t, err, ErrGeneration)

	svc, _, _ = newService(objecttest.New(), `{"summary":"missing everything"}`, nil)
	_, err = svc.Tailor(context.Background(), in)
	assert.ErrorIs(t, err, ErrGeneration)

	svc, _, _ = newService(objecttest.New(), "", llm.ErrNotConfigured)
	_, err = svc.Tailor(context.Background(), in)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestParseStoresOriginalAndParsedEnvelope(t *testing.T) {
	store := objecttest.New()
	svc, completer, pub := newService(store, tailoredReply, nil)

	res, err := svc.Parse(context.Background(), ParseInput{
		FileName: "Ada CV.txt",
		Data:     []byte("Ada Lovelace\nLead Engineer at Analytical Engines"),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Ada Lovelace\nLead Engineer at Analytical Engines", res.RawText)
	require.NotNil(t, res.OriginalKey)
	require.NotNil(t, res.ParsedKey)
	assert.Equal(t, "original-resumes/1714564800000-ada-cv.txt", *res.OriginalKey)
	assert.Equal(t, "parsed-resumes/1714564800000-ada-cv.json", *res.ParsedKey)
	assert.True(t, strings.HasPrefix(completer.user[0], "Resume text:\n"))

	obj, err := store.Get(context.Background(), *res.ParsedKey)
	require.NoError(t, err)
	var env ParsedEnvelope
	require.NoError(t, json.Unmarshal(obj.Body, &env))
	assert.Equal(t, "Ada CV.txt", env.OriginalFileName)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", env.UploadedAt)

	require.Len(t, pub.Events(), 1)
	assert.Equal(t, events.TypeResumeParsed, pub.Events()[0].Type)
}

func TestParseErrors(t *testing.T) {
	svc, _, _ := newService(objecttest.New(), tailoredReply, nil)

	_, err := svc.Parse(context.Background(), ParseInput{FileName: "cv.png", Data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")})
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = svc.Parse(context.Background(), ParseInput{FileName: "cv.txt", Data: []byte("   ")})
	assert.ErrorIs(t, err, ErrNoText)

	_, err = svc.Parse(context.Background(), ParseInput{FileName: "cv.txt"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListDefaultsToTailoredAndEnrichesEnvelopes(t *testing.T) {
	store := objecttest.New()
	svc, _, _ := newService(store, tailoredReply, nil)
	_, err := svc.Tailor(context.Background(), TailorInput{
		ResumeData:     json.RawMessage(originalResume),
		JobDescription: "jd",
		CompanyName:    "Babbage & Co",
		RoleTitle:      "Engineer",
	})
	require.NoError(t, err)
	store.Seed("original-resumes/1-cv.pdf", []byte("pdf"), "application/pdf", nil)

	listing, err := svc.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	require.NotNil(t, listing.Items[0].Metadata)
	assert.Equal(t, "Babbage & Co", listing.Items[0].Metadata.CompanyName)
	assert.Equal(t, "Engineer", listing.Items[0].Metadata.RoleTitle)

	_, err = svc.List(context.Background(), "secrets/", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
