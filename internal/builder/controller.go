package builder

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"resumeforge/internal/schema"
	"resumeforge/pkg/models"
)

// SectionKind tags the shape of a document section so mutations are
// exhaustively typed instead of branching on runtime shape.
type SectionKind int

const (
	// ScalarField is a top-level string field (about).
	ScalarField SectionKind = iota
	// RecordSection is a single named record (basicDetails).
	RecordSection
	// ScalarListSection is an ordered list of bare strings (techSkills,
	// softSkills); mutation-by-index replaces the whole string.
	ScalarListSection
	// RecordListSection is an ordered list of homogeneous records
	// (education, experience, projects, certifications).
	RecordListSection
)

// sectionKind resolves a section name to its shape tag.
func sectionKind(name string) (SectionKind, bool) {
	switch name {
	case schema.SectionAbout:
		return ScalarField, true
	case schema.SectionBasicDetails:
		return RecordSection, true
	case schema.SectionTechSkills, schema.SectionSoftSkills:
		return ScalarListSection, true
	case schema.SectionEducation, schema.SectionExperience,
		schema.SectionProjects, schema.SectionCertifications:
		return RecordListSection, true
	}
	return 0, false
}

// ArrayOp names a PatchArray operation.
type ArrayOp string

const (
	ArrayAdd    ArrayOp = "add"
	ArrayRemove ArrayOp = "remove"
)

const defaultDebounce = 500 * time.Millisecond

// Controller is the single source of truth for one document under edit. It
// owns the document, its validation status, the touched-path set and the one
// pending debounced validation timer. One controller serves one editing
// session; no two controllers share a document.
type Controller struct {
	mu         sync.Mutex
	doc        *models.ResumeDocument
	initial    *models.ResumeDocument
	rules      *schema.Set
	visibility *VisibilityController
	useVis     bool

	errors  *schema.ErrorTree
	touched map[string]struct{}
	dirty   bool
	valid   bool

	clock    Clock
	debounce time.Duration
	pending  Timer
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock, letting tests drive the debounce timer.
func WithClock(c Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithDebounce overrides the validation quiet period.
func WithDebounce(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.debounce = d }
}

// WithVisibility makes whole-form validation consult the flag set; without it
// the fixed rule set applies.
func WithVisibility(initial models.SectionVisibility) Option {
	return func(ctrl *Controller) {
		ctrl.visibility = NewVisibilityController(initial)
		ctrl.useVis = true
	}
}

// NewController starts an editing session over a snapshot of initial.
func NewController(initial *models.ResumeDocument, opts ...Option) *Controller {
	if initial == nil {
		initial = models.NewResumeDocument()
	}
	ctrl := &Controller{
		doc:        initial.Clone(),
		initial:    initial.Clone(),
		rules:      schema.NewSet(),
		visibility: NewVisibilityController(models.DefaultSectionVisibility()),
		errors:     schema.Node(),
		touched:    make(map[string]struct{}),
		clock:      WallClock{},
		debounce:   defaultDebounce,
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	return ctrl
}

// UpdateField mutates one field of the document. The mutation is dispatched
// on the section's shape tag; scalar list elements are replaced wholesale
// (field must be empty). Out-of-range indexes are silent no-ops so a stale
// UI row never crashes the session. Applied mutations mark the controller
// dirty, record the touched path and schedule one debounced validation pass.
func (c *Controller) UpdateField(section string, index int, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kind, ok := sectionKind(section)
	if !ok {
		return fmt.Errorf("unknown section: %s", section)
	}

	var applied bool
	var path string

	switch kind {
	case ScalarField:
		c.doc.About = value
		applied, path = true, section

	case RecordSection:
		if !setBasicDetailsField(&c.doc.BasicDetails, field, value) {
			return fmt.Errorf("section %s has no field %s", section, field)
		}
		applied, path = true, fmt.Sprintf("%s.%s", section, field)

	case ScalarListSection:
		if field != "" {
			return fmt.Errorf("section %s holds bare strings, not records", section)
		}
		list := c.scalarList(section)
		if index >= 0 && index < len(*list) {
			(*list)[index] = value
			applied = true
		}
		path = fmt.Sprintf("%s.%d", section, index)

	case RecordListSection:
		ok, err := c.setRecordField(section, index, field, value)
		if err != nil {
			return err
		}
		applied = ok
		path = fmt.Sprintf("%s.%d.%s", section, index, field)
	}

	if applied {
		c.dirty = true
		c.touched[path] = struct{}{}
		c.scheduleValidation()
	}
	return nil
}

// PatchArray appends to or removes from a section array. Removing an index
// that does not exist is a silent no-op; removal of the last remaining entry
// of a required section is allowed and left for validation to flag. Both
// operations mark the document dirty.
func (c *Controller) PatchArray(section string, op ArrayOp, index int, item interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kind, ok := sectionKind(section)
	if !ok {
		return fmt.Errorf("unknown section: %s", section)
	}

	switch kind {
	case ScalarListSection:
		list := c.scalarList(section)
		switch op {
		case ArrayAdd:
			s, _ := item.(string)
			*list = append(*list, s)
		case ArrayRemove:
			if index >= 0 && index < len(*list) {
				*list = append((*list)[:index], (*list)[index+1:]...)
			}
		default:
			return fmt.Errorf("unknown array operation: %s", op)
		}

	case RecordListSection:
		if err := c.patchRecordList(section, op, index, item); err != nil {
			return err
		}

	default:
		return fmt.Errorf("section %s is not an array", section)
	}

	c.dirty = true
	c.scheduleValidation()
	return nil
}

// ValidateSection runs one section's rule set against the current document.
// On success it clears that section's previously recorded errors; on failure
// it replaces them with a flat field → message mapping scoped to the section.
func (c *Controller) ValidateSection(section string) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.sectionData(section)
	if err != nil {
		return nil, err
	}
	flat, err := c.rules.ValidateSection(section, data)
	if err != nil {
		return nil, err
	}

	c.errors.Delete(section)
	for field, msg := range flat {
		if field == "" {
			c.errors.Add(section, msg)
			continue
		}
		c.errors.Add(section+"."+field, msg)
	}
	return flat, nil
}

// ValidateForm runs whole-document validation immediately and is the
// authoritative validity signal. Any pending debounced pass is cancelled
// since it would only re-observe the same state.
func (c *Controller) ValidateForm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked()
}

func (c *Controller) validateLocked() bool {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	var vis *models.SectionVisibility
	if c.useVis {
		flags := c.visibility.Flags()
		vis = &flags
	}
	c.errors = c.rules.ValidateDocument(c.doc, vis)
	c.valid = c.errors.Empty()
	return c.valid
}

// Reset restores the initial snapshot and clears errors, touched paths, the
// dirty flag and any pending validation.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.doc = c.initial.Clone()
	c.errors = schema.Node()
	c.touched = make(map[string]struct{})
	c.dirty = false
	c.valid = false
}

// FieldError looks up the error recorded at a dotted field path.
func (c *Controller) FieldError(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.Lookup(path)
}

// IsTouched reports whether the field path has been edited this session.
func (c *Controller) IsTouched(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.touched[path]
	return ok
}

// TouchedPaths returns the sorted touched set.
func (c *Controller) TouchedPaths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	paths := make([]string, 0, len(c.touched))
	for p := range c.touched {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Document returns a deep copy of the current document; the controller keeps
// exclusive ownership of the original.
func (c *Controller) Document() *models.ResumeDocument {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Errors returns the current error tree.
func (c *Controller) Errors() *schema.ErrorTree {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors
}

// Valid reports the result of the last whole-form validation.
func (c *Controller) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid
}

// Dirty reports whether the document has been mutated since creation/reset.
func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Visibility returns the current flag set.
func (c *Controller) Visibility() models.SectionVisibility {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibility.Flags()
}

// ApplyVisibility toggles/shows/hides one section. It deliberately neither
// touches section data nor re-validates: hidden data survives untouched.
func (c *Controller) ApplyVisibility(section, op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch op {
	case "toggle":
		return c.visibility.Toggle(section)
	case "show":
		return c.visibility.Show(section)
	case "hide":
		return c.visibility.Hide(section)
	}
	return fmt.Errorf("unknown visibility operation: %s", op)
}

// scheduleValidation arms the debounce timer, replacing any pending one so
// bursts of edits collapse into a single validation pass observing the state
// at the moment the quiet period ends. Callers hold c.mu.
func (c *Controller) scheduleValidation() {
	if c.pending != nil {
		c.pending.Stop()
	}
	c.pending = c.clock.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.pending = nil
		c.validateLocked()
	})
}

// scalarList resolves a ScalarListSection name to its backing slice.
func (c *Controller) scalarList(section string) *[]string {
	if section == schema.SectionTechSkills {
		return &c.doc.TechSkills
	}
	return &c.doc.SoftSkills
}

// sectionData extracts a copy of one section for partial validation.
func (c *Controller) sectionData(section string) (interface{}, error) {
	switch section {
	case schema.SectionBasicDetails:
		return c.doc.BasicDetails, nil
	case schema.SectionAbout:
		return c.doc.About, nil
	case schema.SectionEducation:
		return append([]models.Education(nil), c.doc.Education...), nil
	case schema.SectionExperience:
		return append([]models.Experience(nil), c.doc.Experience...), nil
	case schema.SectionTechSkills:
		return append([]string(nil), c.doc.TechSkills...), nil
	case schema.SectionSoftSkills:
		return append([]string(nil), c.doc.SoftSkills...), nil
	case schema.SectionProjects:
		return append([]models.Project(nil), c.doc.Projects...), nil
	case schema.SectionCertifications:
		return append([]models.Certification(nil), c.doc.Certifications...), nil
	}
	return nil, fmt.Errorf("unknown section: %s", section)
}

// setRecordField dispatches a field write to the record at index. The bool
// result reports whether the write landed (false for out-of-range indexes).
func (c *Controller) setRecordField(section string, index int, field, value string) (bool, error) {
	switch section {
	case schema.SectionEducation:
		if index < 0 || index >= len(c.doc.Education) {
			return false, nil
		}
		if !setEducationField(&c.doc.Education[index], field, value) {
			return false, fmt.Errorf("section %s has no field %s", section, field)
		}
	case schema.SectionExperience:
		if index < 0 || index >= len(c.doc.Experience) {
			return false, nil
		}
		if !setExperienceField(&c.doc.Experience[index], field, value) {
			return false, fmt.Errorf("section %s has no field %s", section, field)
		}
	case schema.SectionProjects:
		if index < 0 || index >= len(c.doc.Projects) {
			return false, nil
		}
		if !setProjectField(&c.doc.Projects[index], field, value) {
			return false, fmt.Errorf("section %s has no field %s", section, field)
		}
	case schema.SectionCertifications:
		if index < 0 || index >= len(c.doc.Certifications) {
			return false, nil
		}
		if !setCertificationField(&c.doc.Certifications[index], field, value) {
			return false, fmt.Errorf("section %s has no field %s", section, field)
		}
	default:
		return false, fmt.Errorf("section %s is not a record list", section)
	}
	return true, nil
}

// patchRecordList applies add/remove to a record list. Add accepts a typed
// record or nil (blank row); remove out of range is a no-op.
func (c *Controller) patchRecordList(section string, op ArrayOp, index int, item interface{}) error {
	switch section {
	case schema.SectionEducation:
		return patchList(&c.doc.Education, op, index, item)
	case schema.SectionExperience:
		return patchList(&c.doc.Experience, op, index, item)
	case schema.SectionProjects:
		return patchList(&c.doc.Projects, op, index, item)
	case schema.SectionCertifications:
		return patchList(&c.doc.Certifications, op, index, item)
	}
	return fmt.Errorf("section %s is not a record list", section)
}

func patchList[T any](list *[]T, op ArrayOp, index int, item interface{}) error {
	switch op {
	case ArrayAdd:
		var entry T
		if item != nil {
			typed, ok := item.(T)
			if !ok {
				return fmt.Errorf("wrong item type %T for section", item)
			}
			entry = typed
		}
		*list = append(*list, entry)
	case ArrayRemove:
		if index >= 0 && index < len(*list) {
			*list = append((*list)[:index], (*list)[index+1:]...)
		}
	default:
		return fmt.Errorf("unknown array operation: %s", op)
	}
	return nil
}

func setBasicDetailsField(b *models.BasicDetails, field, value string) bool {
	switch field {
	case "name":
		b.Name = value
	case "title":
		b.Title = value
	case "email":
		b.Email = value
	case "phone":
		b.Phone = value
	case "website":
		b.Website = value
	case "address":
		b.Address = value
	default:
		return false
	}
	return true
}

func setEducationField(e *models.Education, field, value string) bool {
	switch field {
	case "year":
		e.Year = value
	case "degree":
		e.Degree = value
	case "university":
		e.University = value
	case "cgpa":
		e.CGPA = value
	default:
		return false
	}
	return true
}

func setExperienceField(e *models.Experience, field, value string) bool {
	switch field {
	case "year":
		e.Year = value
	case "company":
		e.Company = value
	case "location":
		e.Location = value
	case "role":
		e.Role = value
	case "description":
		e.Description = value
	default:
		return false
	}
	return true
}

func setProjectField(p *models.Project, field, value string) bool {
	switch field {
	case "name":
		p.Name = value
	case "result":
		p.Result = value
	case "technologies":
		p.Technologies = value
	case "github":
		p.Github = value
	default:
		return false
	}
	return true
}

func setCertificationField(c *models.Certification, field, value string) bool {
	switch field {
	case "name":
		c.Name = value
	case "link":
		c.Link = value
	default:
		return false
	}
	return true
}
