package validation

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Status is the code/message pair of one report slot.
type Status struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Change records one value resolution: the descriptor whose value was
// rewritten, the original value, and its canonical form.
type Change struct {
	Field    string `json:"field"`
	Original any    `json:"original"`
	Resolved any    `json:"resolved"`
}

// Slot is one entry of a validation report, corresponding to one logical
// input: the single value, one element of a zipped list, or one object of a
// bag.
type Slot struct {
	Status     Status `json:"status"`
	Descriptor string `json:"descriptor,omitempty"`
	Value      any    `json:"value,omitempty"`

	// Changes maps resolution digests to the substitutions applied while
	// the slot was still valid.
	Changes map[string]Change `json:"changes,omitempty"`

	// Optional attachments.
	Section     any    `json:"section,omitempty"`
	Regexp      string `json:"regexp,omitempty"`
	ParentValue any    `json:"parentValue,omitempty"`
}

// IsOK reports whether the slot is idle.
func (s *Slot) IsOK() bool { return s != nil && s.Status.Code == OK }

// Extra attaches optional context to a status write.
type Extra func(*Slot)

// WithSection attaches the schema clause that produced the status.
func WithSection(section any) Extra {
	return func(s *Slot) { s.Section = section }
}

// WithRegexp attaches the pattern the value failed to match.
func WithRegexp(pattern string) Extra {
	return func(s *Slot) { s.Regexp = pattern }
}

// WithParent attaches the container holding the offending element.
func WithParent(parent any) Extra {
	return func(s *Slot) { s.ParentValue = parent }
}

// Report collects validation results: a single slot, or one slot per input
// element in zip and bag modes.
type Report struct {
	catalog  *Catalog
	language string

	// Slot holds the result in single-value and object modes.
	Slot *Slot

	// Slots holds per-index results in zip and bag modes.
	Slots []*Slot
}

// newReport creates a report issuing messages in the given language.
func newReport(catalog *Catalog, language string) *Report {
	return &Report{catalog: catalog, language: language}
}

// initSlots switches the report to indexed mode with n idle slots.
func (r *Report) initSlots(n int) {
	r.Slots = make([]*Slot, n)
	for i := range r.Slots {
		r.SetStatus(OK, "", nil, i)
	}
}

// SetStatus constructs a fresh slot for the given code. OK resets the slot;
// any other code replaces it, discarding previously logged resolutions.
// When idx is negative the slot is the report's single slot, otherwise the
// indexed slot. Returns true iff the resulting code is OK.
func (r *Report) SetStatus(code Code, descriptor string, value any, idx int, extras ...Extra) bool {
	slot := &Slot{
		Status: Status{
			Code:    code,
			Message: r.catalog.Message(code, r.language),
		},
		Descriptor: descriptor,
	}
	if code != OK {
		slot.Value = value
	}
	for _, extra := range extras {
		extra(slot)
	}

	if idx >= 0 {
		r.growTo(idx)
		r.Slots[idx] = slot
	} else {
		r.Slot = slot
	}
	return code == OK
}

// LogResolution records a value substitution in the slot's changes map,
// keyed by a stable digest of the descriptor and the original value.
// Idempotent for duplicate descriptor/value pairs. Resolutions must be
// logged before any error status replaces the slot; an error discards them,
// the value no longer being considered valid.
func (r *Report) LogResolution(descriptor string, original, resolved any, idx int) {
	slot := r.slotAt(idx)
	if slot == nil {
		r.SetStatus(OK, descriptor, nil, idx)
		slot = r.slotAt(idx)
	}
	if slot.Changes == nil {
		slot.Changes = make(map[string]Change)
	}

	key := resolutionDigest(descriptor, original)
	if _, ok := slot.Changes[key]; ok {
		return
	}
	slot.Changes[key] = Change{Field: descriptor, Original: original, Resolved: resolved}
}

// IsOK reports whether every slot is idle.
func (r *Report) IsOK() bool {
	if r.Slots != nil {
		for _, slot := range r.Slots {
			if !slot.IsOK() {
				return false
			}
		}
		return true
	}
	return r.Slot == nil || r.Slot.IsOK()
}

// MarshalJSON serializes the report as a single slot object or a slot array,
// matching its mode.
func (r *Report) MarshalJSON() ([]byte, error) {
	if r.Slots != nil {
		return json.Marshal(r.Slots)
	}
	if r.Slot == nil {
		return json.Marshal(&Slot{Status: Status{Code: OK, Message: r.catalog.Message(OK, r.language)}})
	}
	return json.Marshal(r.Slot)
}

// slotAt returns the addressed slot, or nil when it was never written.
func (r *Report) slotAt(idx int) *Slot {
	if idx >= 0 {
		if idx < len(r.Slots) {
			return r.Slots[idx]
		}
		return nil
	}
	return r.Slot
}

// growTo extends the indexed slots so idx is addressable.
func (r *Report) growTo(idx int) {
	for len(r.Slots) <= idx {
		r.Slots = append(r.Slots, nil)
	}
}

// resolutionDigest computes the stable 128-bit changes key for a
// descriptor/value pair.
func resolutionDigest(descriptor string, original any) string {
	payload := []byte(descriptor)
	payload = append(payload, 0)
	if serialized, err := json.Marshal(original); err == nil {
		payload = append(payload, serialized...)
	}
	return uuid.NewMD5(uuid.NameSpaceOID, payload).String()
}
