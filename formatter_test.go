package hcprofile_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/hcprofile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatProfile(t *testing.T) {
	t.Parallel()

	t.Run("renders every field as unavailable for an empty profile", func(t *testing.T) {
		t.Parallel()

		result := hcprofile.FormatProfile(&hcprofile.Profile{})

		for _, f := range hcprofile.Fields {
			assert.Contains(t, result, f.Title+"\n"+strings.Repeat("=", len(f.Title))+"\n")
		}
		assert.Equal(t, len(hcprofile.Fields), strings.Count(result, hcprofile.Unavailable))
	})

	t.Run("nil profile renders like an empty one", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, hcprofile.FormatProfile(&hcprofile.Profile{}), hcprofile.FormatProfile(nil))
	})

	t.Run("renders text section with heading layout", func(t *testing.T) {
		t.Parallel()

		p := &hcprofile.Profile{Overview: hcprofile.TextSection("Dr. Smith is a cardiologist.")}

		result := hcprofile.FormatProfile(p)

		expected := "Professional Overview\n=====================\n\nDr. Smith is a cardiologist.\n\n\n\nMedical Specialty\n"
		assert.True(t, strings.HasPrefix(result, expected), result)
	})

	t.Run("replaces literal escapes and indents bullets", func(t *testing.T) {
		t.Parallel()

		p := &hcprofile.Profile{Expertise: hcprofile.TextSection(`Heart failure\n• Echocardiography\n• Stress testing`)}

		result := hcprofile.FormatProfile(p)

		assert.Contains(t, result, "Heart failure\n  • Echocardiography\n  • Stress testing")
		assert.NotContains(t, result, `\n`)
	})

	t.Run("renders FAQ pairs in insertion order", func(t *testing.T) {
		t.Parallel()

		p := &hcprofile.Profile{FAQs: hcprofile.PairsSection(
			hcprofile.QA{Question: "Zebra question?", Answer: "Last letter."},
			hcprofile.QA{Question: "Apple question?", Answer: "First letter."},
		)}

		result := hcprofile.FormatProfile(p)

		zebra := strings.Index(result, "Q: Zebra question?\nA: Last letter.\n")
		apple := strings.Index(result, "Q: Apple question?\nA: First letter.\n")
		require.NotEqual(t, -1, zebra)
		require.NotEqual(t, -1, apple)
		assert.Less(t, zebra, apple)
	})

	t.Run("empty FAQ object renders heading only", func(t *testing.T) {
		t.Parallel()

		p := &hcprofile.Profile{FAQs: hcprofile.PairsSection()}

		result := hcprofile.FormatProfile(p)

		assert.True(t, strings.HasSuffix(result, "Frequently Asked Questions\n==========================\n\n\n\n"), result)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		p, err := hcprofile.ParseResponse(`{"overview":"A","faqs":{"q1":"a1","q2":"a2","q3":"a3"}}`)
		require.NoError(t, err)

		first := hcprofile.FormatProfile(p)
		for range 10 {
			assert.Equal(t, first, hcprofile.FormatProfile(p))
		}
	})
}
