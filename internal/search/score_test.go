package search

import (
	"reflect"
	"testing"

	"github.com/sandevgo/partsbot/internal/core"
)

func scorer() *Scorer { return NewScorer(DefaultWeights) }

func TestScoreExactReferenceBeatsPartial(t *testing.T) {
	qc := BuildContext("13780M62S00", "13780M62S00", false)

	exact := core.Part{Designation: "FILTRE A AIR ALTO", Reference: "13780M62S00", Stock: 3}
	partial := core.Part{Designation: "FILTRE A AIR CELERIO", Reference: "13780M62S00-KIT", Stock: 9}

	if se, sp := scorer().Score(qc, exact), scorer().Score(qc, partial); se <= sp {
		t.Errorf("exact reference scored %d, partial %d; exact must win", se, sp)
	}
}

func TestScoreWrongCategorySinks(t *testing.T) {
	qc := BuildContext("frein avant", "frein avant", false)

	right := core.Part{Designation: "PLAQUETTE DE FREIN AV ALTO", Reference: "P1"}
	wrong := core.Part{Designation: "COURROIE ALTERNATEUR", Reference: "C1", Stock: 10}

	sr, sw := scorer().Score(qc, right), scorer().Score(qc, wrong)
	if sw >= sr {
		t.Errorf("wrong category scored %d, right %d", sw, sr)
	}
	if sw >= 0 {
		t.Errorf("wrong category must go negative, got %d", sw)
	}
}

func TestScoreExactnessTiers(t *testing.T) {
	qc := BuildContext("amortisseur", "amortisseur", false)
	s := scorer()

	exact := s.Score(qc, core.Part{Designation: "AMORTISSEUR"})
	prefix := s.Score(qc, core.Part{Designation: "AMORTISSEUR AV ALTO"})
	mention := s.Score(qc, core.Part{Designation: "KIT AMORTISSEUR COMPLET"})
	accessory := s.Score(qc, core.Part{Designation: "SUPPORT AMORTISSEUR AV"})

	if !(exact > prefix && prefix > mention && mention > accessory) {
		t.Errorf("tiers out of order: exact=%d prefix=%d mention=%d accessory=%d",
			exact, prefix, mention, accessory)
	}
	if accessory >= mention {
		t.Errorf("accessory %d must sink below plain mention %d", accessory, mention)
	}
}

func TestScorePositionConflict(t *testing.T) {
	qc := BuildContext("amortisseur avant", "amortisseur avant", false)
	s := scorer()

	match := s.Score(qc, core.Part{Designation: "AMORTISSEUR AV ALTO"})
	conflict := s.Score(qc, core.Part{Designation: "AMORTISSEUR AR ALTO"})
	silent := s.Score(qc, core.Part{Designation: "AMORTISSEUR ALTO"})

	if match <= silent {
		t.Errorf("position match %d must beat unmarked %d", match, silent)
	}
	if conflict >= silent {
		t.Errorf("position conflict %d must lose to unmarked %d", conflict, silent)
	}
}

func TestScoreModelAndStockBonuses(t *testing.T) {
	qc := BuildContext("phare swift", "phare swift", false)
	s := scorer()

	inStock := s.Score(qc, core.Part{Designation: "PHARE AV SWIFT", Stock: 4})
	outOfStock := s.Score(qc, core.Part{Designation: "PHARE AV SWIFT", Stock: 0})
	otherModel := s.Score(qc, core.Part{Designation: "PHARE AV ALTO", Stock: 4})

	if inStock-outOfStock != DefaultWeights.InStock {
		t.Errorf("stock bonus = %d, want %d", inStock-outOfStock, DefaultWeights.InStock)
	}
	if inStock <= otherModel {
		t.Errorf("matching model %d must beat other model %d", inStock, otherModel)
	}
}

func TestScoreAllOrderingIsDeterministic(t *testing.T) {
	qc := BuildContext("amortisseur", "amortisseur", false)
	parts := []core.Part{
		{Designation: "AMORTISSEUR AV ALTO", Reference: "B200", Stock: 1},
		{Designation: "AMORTISSEUR AV ALTO", Reference: "A100", Stock: 1},
		{Designation: "SUPPORT AMORTISSEUR", Reference: "Z900", Stock: 5},
	}

	first := scorer().ScoreAll(qc, parts)
	second := scorer().ScoreAll(qc, parts)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated scoring of the same input must give the same order")
	}
	// equal score and stock: lexical reference order breaks the tie
	if first[0].Reference != "A100" || first[1].Reference != "B200" {
		t.Errorf("tie-break order = %s, %s; want A100, B200", first[0].Reference, first[1].Reference)
	}
	if first[2].Reference != "Z900" {
		t.Errorf("accessory must rank last, got %s", first[2].Reference)
	}
}

func TestScoreAllStockBreaksScoreTies(t *testing.T) {
	qc := BuildContext("phare", "phare", false)
	parts := []core.Part{
		{Designation: "PHARE AV G", Reference: "L1", Stock: 0},
		{Designation: "PHARE AV G", Reference: "L2", Stock: 3},
	}

	// stock feeds the score too, so strip the bonus to force a pure tie
	weights := DefaultWeights
	weights.InStock = 0
	got := NewScorer(weights).ScoreAll(qc, parts)

	if got[0].Reference != "L2" {
		t.Errorf("higher stock must come first, got %s", got[0].Reference)
	}
}
