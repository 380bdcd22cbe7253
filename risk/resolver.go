// Package risk aggregates accumulated point sensitivities into
// per-parameter ("bucketed") sensitivities, one vector per curve, using
// each curve's own projection onto its parameter basis.
package risk

import (
	"errors"
	"fmt"

	"github.com/openquant/creditcurve/curve"
	"github.com/openquant/creditcurve/market"
	"github.com/openquant/creditcurve/sensitivity"
)

// ErrUnresolvedCurve is returned when no curve matches a sensitivity
// group's key. Aggregation reports it to the caller; groups are never
// silently dropped.
var ErrUnresolvedCurve = errors.New("unresolved curve")

// CurveKey identifies the curve a point sensitivity originated from: the
// variant kind, the curve currency, and the legal entity (zero for plain
// discount curves).
type CurveKey struct {
	Kind          sensitivity.Kind
	CurveCurrency market.Currency
	LegalEntity   market.StandardID
}

// KeyOf extracts the curve key from a point sensitivity.
func KeyOf(p sensitivity.PointSensitivity) CurveKey {
	return CurveKey{
		Kind:          p.Kind(),
		CurveCurrency: p.CurveCurrency(),
		LegalEntity:   p.LegalEntity(),
	}
}

func (k CurveKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Kind, k.CurveCurrency, k.LegalEntity)
}

// CurveResolver is the reference-data lookup collaborator: it resolves a
// curve key to the owning curve view.
type CurveResolver interface {
	// FindCurve returns the curve for the key, or an error wrapping
	// ErrUnresolvedCurve when no curve matches.
	FindCurve(key CurveKey) (curve.View, error)
}

// StaticResolver is a map-backed CurveResolver for fixed curve sets.
type StaticResolver struct {
	curves map[CurveKey]curve.View
}

// NewStaticResolver returns an empty resolver.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{curves: make(map[CurveKey]curve.View)}
}

// Register binds a curve view to a key. The view's currency and entity
// must match the key's.
func (r *StaticResolver) Register(kind sensitivity.Kind, v curve.View) *StaticResolver {
	key := CurveKey{Kind: kind, CurveCurrency: v.Currency(), LegalEntity: v.Entity()}
	r.curves[key] = v
	return r
}

// FindCurve implements CurveResolver.
func (r *StaticResolver) FindCurve(key CurveKey) (curve.View, error) {
	if v, ok := r.curves[key]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%s: %w", key, ErrUnresolvedCurve)
}
