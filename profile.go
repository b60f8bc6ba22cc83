package hcprofile

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Field describes one section of a profile.
type Field struct {
	// Key is the JSON property name requested from the language model.
	Key string

	// Title is the heading used in the formatted document.
	Title string
}

// Profile field keys.
const (
	FieldOverview            = "overview"
	FieldSpecialty           = "specialty"
	FieldExpertise           = "expertise"
	FieldAwardsPublications  = "awards_publications"
	FieldQualifications      = "qualifications"
	FieldAreasOfExpertise    = "areas_of_expertise"
	FieldPatientTestimonials = "patient_testimonials"
	FieldFAQs                = "faqs"
)

// Fields lists the profile sections in document order.
var Fields = []Field{
	{Key: FieldOverview, Title: "Professional Overview"},
	{Key: FieldSpecialty, Title: "Medical Specialty"},
	{Key: FieldExpertise, Title: "Clinical Expertise"},
	{Key: FieldAwardsPublications, Title: "Awards & Publications"},
	{Key: FieldQualifications, Title: "Education & Qualifications"},
	{Key: FieldAreasOfExpertise, Title: "Areas of Expertise"},
	{Key: FieldPatientTestimonials, Title: "Patient Testimonials"},
	{Key: FieldFAQs, Title: "Frequently Asked Questions"},
}

// SectionKind tells whether a section holds free text or question/answer pairs.
type SectionKind int

const (
	SectionText SectionKind = iota
	SectionPairs
)

// QA is a single question and its answer.
type QA struct {
	Question string
	Answer   string
}

// Section is the extracted value of one profile field.
type Section struct {
	Kind  SectionKind
	Text  string
	Pairs []QA
}

// TextSection returns a free-text section.
func TextSection(text string) *Section {
	return &Section{Kind: SectionText, Text: text}
}

// PairsSection returns a question/answer section. Order is preserved.
func PairsSection(pairs ...QA) *Section {
	if pairs == nil {
		pairs = []QA{}
	}
	return &Section{Kind: SectionPairs, Pairs: pairs}
}

// MarshalJSON encodes text as a JSON string and pairs as a JSON object
// whose keys keep their order.
func (s *Section) MarshalJSON() ([]byte, error) {
	if s.Kind == SectionText {
		return json.Marshal(s.Text)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, qa := range s.Pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		q, err := json.Marshal(qa.Question)
		if err != nil {
			return nil, err
		}
		a, err := json.Marshal(qa.Answer)
		if err != nil {
			return nil, err
		}
		buf.Write(q)
		buf.WriteByte(':')
		buf.Write(a)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes any JSON value into a section. Objects become pairs
// in document order; everything else becomes text.
func (s *Section) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return Errorf(EINVALID, "invalid section JSON")
	}
	if sec := sectionFromResult(gjson.ParseBytes(data)); sec != nil {
		*s = *sec
	} else {
		*s = Section{}
	}
	return nil
}

// sectionFromResult converts a decoded JSON value. Missing values and null
// return nil.
func sectionFromResult(r gjson.Result) *Section {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return nil
	case r.IsObject():
		// A repeated question keeps its first position and its last answer.
		sec := PairsSection()
		index := make(map[string]int)
		r.ForEach(func(key, value gjson.Result) bool {
			q, a := key.String(), valueText(value)
			if i, ok := index[q]; ok {
				sec.Pairs[i].Answer = a
				return true
			}
			index[q] = len(sec.Pairs)
			sec.Pairs = append(sec.Pairs, QA{Question: q, Answer: a})
			return true
		})
		return sec
	default:
		return TextSection(valueText(r))
	}
}

// valueText renders a JSON value as text. Array elements go on separate lines.
func valueText(r gjson.Result) string {
	switch {
	case r.Type == gjson.String:
		return r.Str
	case r.Type == gjson.Null:
		return ""
	case r.IsArray():
		var lines []string
		r.ForEach(func(_, v gjson.Result) bool {
			lines = append(lines, valueText(v))
			return true
		})
		return strings.Join(lines, "\n")
	default:
		return r.Raw
	}
}

// Profile is the extracted information about a healthcare professional.
// A nil section means the model did not provide that field.
type Profile struct {
	Overview            *Section
	Specialty           *Section
	Expertise           *Section
	AwardsPublications  *Section
	Qualifications      *Section
	AreasOfExpertise    *Section
	PatientTestimonials *Section
	FAQs                *Section
}

// slot returns the storage for the field with the given key.
func (p *Profile) slot(key string) **Section {
	switch key {
	case FieldOverview:
		return &p.Overview
	case FieldSpecialty:
		return &p.Specialty
	case FieldExpertise:
		return &p.Expertise
	case FieldAwardsPublications:
		return &p.AwardsPublications
	case FieldQualifications:
		return &p.Qualifications
	case FieldAreasOfExpertise:
		return &p.AreasOfExpertise
	case FieldPatientTestimonials:
		return &p.PatientTestimonials
	case FieldFAQs:
		return &p.FAQs
	}
	return nil
}

// Section returns the section stored under key, or nil if it is absent or
// the key is unknown. Safe to call on a nil profile.
func (p *Profile) Section(key string) *Section {
	if p == nil {
		return nil
	}
	if s := p.slot(key); s != nil {
		return *s
	}
	return nil
}

// SetSection stores sec under key. Unknown keys are ignored.
func (p *Profile) SetSection(key string, sec *Section) {
	if s := p.slot(key); s != nil {
		*s = sec
	}
}

// MarshalJSON encodes the profile as an object in Fields order, omitting
// absent sections.
func (p *Profile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range Fields {
		sec := p.Section(f.Key)
		if sec == nil {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := sec.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the profile. Unknown properties
// are ignored.
func (p *Profile) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return Errorf(EINVALID, "invalid profile JSON")
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return Errorf(EINVALID, "expected a JSON object")
	}

	*p = Profile{}
	for _, f := range Fields {
		p.SetSection(f.Key, sectionFromResult(r.Get(f.Key)))
	}
	return nil
}
