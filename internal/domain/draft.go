package domain

import "time"

// MaxDraftMedia is the cap on media attachments per draft. When exceeded,
// the oldest entries are dropped so the most recent five remain.
const MaxDraftMedia = 5

// DefaultCategory is used for price analysis when the seller left the
// category unset.
const DefaultCategory = "Retail"

// Categories returns the preset category choices offered in the details form.
// Free-text categories are also accepted.
func Categories() []string {
	return []string{"Fashion", "Home Decor", "Electronics", "Handmade"}
}

// MediaKind discriminates media attachments.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
)

// MediaRef is an opaque reference to already-encoded binary content supplied
// by the capture collaborator. The raw payload never leaves the server.
type MediaRef struct {
	ID          string    `json:"id"`
	Kind        MediaKind `json:"kind"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
	AddedAt     time.Time `json:"added_at"`
}

// ProductDetails holds the structured fields of a listing. Price and
// quantity stay strings end to end, exactly as the seller typed them.
type ProductDetails struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// Draft is the single in-progress product listing.
type Draft struct {
	Media          []MediaRef     `json:"media"`
	NativeAudio    *MediaRef      `json:"native_audio,omitempty"`
	TranslatedText string         `json:"translated_text"`
	ProductDetails ProductDetails `json:"product_details"`
}

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return Draft{Media: []MediaRef{}}
}

// ReadyForEnrichment reports whether the draft satisfies the preconditions
// for running AI analysis: non-empty name and price.
func (d *Draft) ReadyForEnrichment() bool {
	return d.ProductDetails.Name != "" && d.ProductDetails.Price != ""
}

// ReadyForPublish reports whether the draft may advance to channel selection.
func (d *Draft) ReadyForPublish() bool {
	return d.ProductDetails.Name != ""
}

// DescriptionSeed returns the text handed to description generation: the
// translated text when present, otherwise the product name.
func (d *Draft) DescriptionSeed() string {
	if d.TranslatedText != "" {
		return d.TranslatedText
	}
	return d.ProductDetails.Name
}

// AnalysisCategory returns the category handed to price analysis, falling
// back to DefaultCategory when unset.
func (d *Draft) AnalysisCategory() string {
	if d.ProductDetails.Category != "" {
		return d.ProductDetails.Category
	}
	return DefaultCategory
}

// Clone returns a deep copy of the draft, payload bytes included.
func (d *Draft) Clone() Draft {
	out := *d
	out.Media = make([]MediaRef, len(d.Media))
	for i, m := range d.Media {
		out.Media[i] = m.clone()
	}
	if d.NativeAudio != nil {
		audio := d.NativeAudio.clone()
		out.NativeAudio = &audio
	}
	return out
}

func (m MediaRef) clone() MediaRef {
	out := m
	out.Data = make([]byte, len(m.Data))
	copy(out.Data, m.Data)
	return out
}

// SavedDraft is an immutable snapshot of a draft taken at save time.
type SavedDraft struct {
	Draft   Draft     `json:"draft"`
	SavedAt time.Time `json:"saved_at"`
}
