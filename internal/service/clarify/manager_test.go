package clarify

import (
	"reflect"
	"testing"
	"time"

	"github.com/sandevgo/partsbot/internal/core"
	"github.com/sandevgo/partsbot/internal/search"
)

func amortisseurSet() []core.ScoredPart {
	parts := []core.Part{
		{Designation: "AMORTISSEUR AV G ALTO", Reference: "A1", Stock: 2},
		{Designation: "AMORTISSEUR AV D ALTO", Reference: "A2", Stock: 2},
		{Designation: "AMORTISSEUR AR G ALTO", Reference: "A3", Stock: 0},
		{Designation: "AMORTISSEUR AR D ALTO", Reference: "A4", Stock: 1},
	}
	scored := make([]core.ScoredPart, 0, len(parts))
	for _, p := range parts {
		scored = append(scored, core.ScoredPart{Part: p, Score: 100})
	}
	return scored
}

func TestCheckNeededPositionFirst(t *testing.T) {
	qc := search.BuildContext("amortisseur", "amortisseur", false)

	amb, needed := CheckNeeded(qc, amortisseurSet())
	if !needed {
		t.Fatal("mixed front/rear candidates must trigger a question")
	}
	if amb.Dimension != DimensionPosition {
		t.Errorf("dimension = %s, want position", amb.Dimension)
	}
	if !reflect.DeepEqual(amb.Values, []string{"arriere", "avant"}) {
		t.Errorf("values = %v", amb.Values)
	}
}

func TestCheckNeededSideAfterPosition(t *testing.T) {
	qc := search.BuildContext("amortisseur avant", "amortisseur avant", false)
	survivors := amortisseurSet()[:2] // AV G and AV D

	amb, needed := CheckNeeded(qc, survivors)
	if !needed {
		t.Fatal("left/right candidates of a bilateral part must trigger a question")
	}
	if amb.Dimension != DimensionSide {
		t.Errorf("dimension = %s, want side", amb.Dimension)
	}
}

func TestCheckNeededSideOnlyForBilateralParts(t *testing.T) {
	qc := search.BuildContext("plaquette avant", "plaquette avant", false)
	survivors := []core.ScoredPart{
		{Part: core.Part{Designation: "PLAQUETTE AV G ALTO"}, Score: 50},
		{Part: core.Part{Designation: "PLAQUETTE AV D ALTO"}, Score: 50},
	}

	if _, needed := CheckNeeded(qc, survivors); needed {
		t.Error("brake pads are sold per axle, no side question expected")
	}
}

func TestCheckNeededBrakePadsAlwaysNeedPosition(t *testing.T) {
	qc := search.BuildContext("plaquette", "plaquette", false)

	// even with zero survivors the rule fires
	amb, needed := CheckNeeded(qc, nil)
	if !needed {
		t.Fatal("brake pads without a position must be clarified")
	}
	if amb.Dimension != DimensionPosition {
		t.Errorf("dimension = %s, want position", amb.Dimension)
	}
	if !reflect.DeepEqual(amb.Values, []string{"avant", "arriere"}) {
		t.Errorf("values = %v", amb.Values)
	}
}

func TestCheckNeededGenericQueryMenu(t *testing.T) {
	qc := search.BuildContext("pieces pour ma suzuki", "pieces pour ma suzuki", false)

	amb, needed := CheckNeeded(qc, nil)
	if !needed {
		t.Fatal("generic query must get the category menu")
	}
	if amb.Dimension != DimensionType {
		t.Errorf("dimension = %s, want type", amb.Dimension)
	}
	if len(amb.Values) == 0 {
		t.Error("menu must offer categories")
	}
}

func TestCheckNeededSettledQuery(t *testing.T) {
	qc := search.BuildContext("amortisseur avant gauche", "amortisseur avant gauche", false)
	survivors := amortisseurSet()[:1]

	if _, needed := CheckNeeded(qc, survivors); needed {
		t.Error("a fully qualified query with one survivor needs no question")
	}
}

func TestCheckNeededSingleSurvivor(t *testing.T) {
	qc := search.BuildContext("amortisseur", "amortisseur", false)

	if _, needed := CheckNeeded(qc, amortisseurSet()[:1]); needed {
		t.Error("one candidate is an answer, not an ambiguity")
	}
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	m.Raise("s1", "amortisseur", DimensionPosition, Parts(amortisseurSet()))

	pc, ok := m.Pending("s1")
	if !ok {
		t.Fatal("expected a pending question")
	}
	if pc.OriginalQuery != "amortisseur" || pc.Dimension != DimensionPosition {
		t.Errorf("pending = %+v", pc)
	}
	if len(pc.Candidates) != 4 {
		t.Errorf("candidates = %d, want 4", len(pc.Candidates))
	}

	if _, ok := m.Pending("other"); ok {
		t.Error("sessions must not share pending questions")
	}

	m.Clear("s1")
	if _, ok := m.Pending("s1"); ok {
		t.Error("cleared question must be gone")
	}
}

func TestManagerRaiseReplaces(t *testing.T) {
	m := NewManager()
	m.Raise("s1", "amortisseur", DimensionPosition, nil)
	m.Raise("s1", "phare", DimensionSide, nil)

	pc, ok := m.Pending("s1")
	if !ok || pc.OriginalQuery != "phare" || pc.Dimension != DimensionSide {
		t.Errorf("pending = %+v, want the replacement", pc)
	}
}

func TestManagerTTLExpiry(t *testing.T) {
	base := time.Now()
	m := NewManager()
	m.now = func() time.Time { return base }

	m.Raise("s1", "amortisseur", DimensionPosition, nil)

	m.now = func() time.Time { return base.Add(9 * time.Minute) }
	if _, ok := m.Pending("s1"); !ok {
		t.Fatal("question inside the TTL must survive")
	}

	m.now = func() time.Time { return base.Add(11 * time.Minute) }
	if _, ok := m.Pending("s1"); ok {
		t.Error("question past the TTL must read as absent")
	}
}

func TestManagerSweepDropsExpired(t *testing.T) {
	base := time.Now()
	m := NewManager()
	m.now = func() time.Time { return base }

	m.Raise("old", "amortisseur", DimensionPosition, nil)
	m.now = func() time.Time { return base.Add(8 * time.Minute) }
	m.Raise("fresh", "phare", DimensionSide, nil)

	m.now = func() time.Time { return base.Add(12 * time.Minute) }
	if dropped := m.dropExpired(); dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if _, ok := m.Pending("fresh"); !ok {
		t.Error("the fresh question must survive the sweep")
	}
}
