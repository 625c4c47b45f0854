package gcdata

// Modality distinguishes the two chromatographic detection modes.
type Modality int

const (
	ModalityMS Modality = iota
	ModalityFID
)

func (m Modality) String() string {
	if m == ModalityFID {
		return "FID"
	}
	return "MS"
}

// Sequence is a name-keyed collection of injections from one acquisition
// run. Iteration follows insertion order so plate computations are
// deterministic.
type Sequence struct {
	Modality Modality

	names  []string
	byName map[string]*Injection
}

// NewSequence returns an empty sequence for the given modality.
func NewSequence(m Modality) *Sequence {
	return &Sequence{Modality: m, byName: make(map[string]*Injection)}
}

// Add inserts an injection keyed by its sample name. Re-adding a name
// replaces the previous injection but keeps its position.
func (s *Sequence) Add(inj *Injection) {
	if _, ok := s.byName[inj.SampleName]; !ok {
		s.names = append(s.names, inj.SampleName)
	}
	s.byName[inj.SampleName] = inj
}

// Get returns the injection for a sample name.
func (s *Sequence) Get(name string) (*Injection, bool) {
	inj, ok := s.byName[name]
	return inj, ok
}

// Names returns the sample names in insertion order.
func (s *Sequence) Names() []string { return s.names }

// Len returns the number of injections.
func (s *Sequence) Len() int { return len(s.names) }
