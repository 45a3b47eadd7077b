package models

// SemestreRef points at the semestre a niveau belongs to
type SemestreRef struct {
	ID int64 `json:"id"` // Semestre ID
}

// Niveau represents a class level
type Niveau struct {
	ID       int64        `json:"id,omitempty"` // 0 until the store assigns one
	Classe   string       `json:"classe"`
	Tp       string       `json:"tp"`
	Td       string       `json:"td"`
	Semestre *SemestreRef `json:"semestre,omitempty"` // Optional semestre reference
}

// NiveauPatch carries a partial update; nil fields are left unchanged
type NiveauPatch struct {
	ID     int64   `json:"id,omitempty"`
	Classe *string `json:"classe"`
	Tp     *string `json:"tp"`
	Td     *string `json:"td"`
}

// Apply merges the non-nil fields of p into n
func (p NiveauPatch) Apply(n *Niveau) {
	if p.Classe != nil {
		n.Classe = *p.Classe
	}
	if p.Tp != nil {
		n.Tp = *p.Tp
	}
	if p.Td != nil {
		n.Td = *p.Td
	}
}

// SemestreID returns the referenced semestre ID, or 0 when there is none
func (n Niveau) SemestreID() int64 {
	if n.Semestre == nil {
		return 0
	}
	return n.Semestre.ID
}
