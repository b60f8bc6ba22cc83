package hcprofile_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/hcprofile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `  {"a":"b"}  `, `{"a":"b"}`},
		{"json fence", "```json\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"bare fence", "```\n{\"a\":\"b\"}\n```", `{"a":"b"}`},
		{"missing closing fence", "```json\n{\"a\":\"b\"}", `{"a":"b"}`},
		{"single line", "```json{\"a\":\"b\"}```", `{"a":"b"}`},
		{"surrounding whitespace", "\n\n```json\n{\"a\":\"b\"}\n```\n", `{"a":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, hcprofile.StripCodeFence(tt.input))
		})
	}
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	t.Run("parses code-fenced JSON", func(t *testing.T) {
		t.Parallel()

		raw := "```json\n{\"overview\": \"About Dr. Lee\", \"specialty\": \"Dermatology\"}\n```"

		p, err := hcprofile.ParseResponse(raw)

		require.NoError(t, err)
		require.NotNil(t, p.Overview)
		assert.Equal(t, "About Dr. Lee", p.Overview.Text)
		assert.Equal(t, "Dermatology", p.Specialty.Text)
		assert.Nil(t, p.FAQs)
	})

	t.Run("keeps FAQ order from the response", func(t *testing.T) {
		t.Parallel()

		raw := `{"faqs": {"Do you accept insurance?": "Yes.", "Are you taking new patients?": "No.", "Where is parking?": "Level B."}}`

		p, err := hcprofile.ParseResponse(raw)

		require.NoError(t, err)
		require.NotNil(t, p.FAQs)
		assert.Equal(t, hcprofile.SectionPairs, p.FAQs.Kind)
		assert.Equal(t, []hcprofile.QA{
			{Question: "Do you accept insurance?", Answer: "Yes."},
			{Question: "Are you taking new patients?", Answer: "No."},
			{Question: "Where is parking?", Answer: "Level B."},
		}, p.FAQs.Pairs)
	})

	t.Run("keeps the last answer for a repeated question", func(t *testing.T) {
		t.Parallel()

		raw := `{"faqs": {"Do you accept insurance?": "No.", "Where is parking?": "Level B.", "Do you accept insurance?": "Yes, most plans."}}`

		p, err := hcprofile.ParseResponse(raw)

		require.NoError(t, err)
		require.NotNil(t, p.FAQs)
		assert.Equal(t, []hcprofile.QA{
			{Question: "Do you accept insurance?", Answer: "Yes, most plans."},
			{Question: "Where is parking?", Answer: "Level B."},
		}, p.FAQs.Pairs)
		assert.Equal(t, 1, strings.Count(hcprofile.FormatProfile(p), "Q: Do you accept insurance?"))
	})

	t.Run("treats null as absent", func(t *testing.T) {
		t.Parallel()

		p, err := hcprofile.ParseResponse(`{"overview": null}`)

		require.NoError(t, err)
		assert.Nil(t, p.Overview)
	})

	t.Run("joins array values line by line", func(t *testing.T) {
		t.Parallel()

		p, err := hcprofile.ParseResponse(`{"qualifications": ["MD, Harvard", "Residency, Mayo Clinic"]}`)

		require.NoError(t, err)
		assert.Equal(t, "MD, Harvard\nResidency, Mayo Clinic", p.Qualifications.Text)
	})

	t.Run("reports malformed JSON with raw response", func(t *testing.T) {
		t.Parallel()

		raw := `{"overview": "unterminated`

		p, err := hcprofile.ParseResponse(raw)

		require.Error(t, err)
		assert.Nil(t, p)
		var perr *hcprofile.ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, raw, perr.Raw)
		assert.Contains(t, err.Error(), "parsing error")
	})

	t.Run("reports non-object JSON", func(t *testing.T) {
		t.Parallel()

		_, err := hcprofile.ParseResponse(`["not", "an", "object"]`)

		var perr *hcprofile.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, perr.Error(), "expected a JSON object")
	})

	t.Run("reports prose response", func(t *testing.T) {
		t.Parallel()

		_, err := hcprofile.ParseResponse("I could not find any information on this page.")

		var perr *hcprofile.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "I could not find any information on this page.", perr.Raw)
	})
}
