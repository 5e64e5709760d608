// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isect

import (
	"math"

	"github.com/cpmech/sgm/curve"
	"github.com/cpmech/sgm/gmath"
	"github.com/cpmech/sgm/surface"
)

// SurfaceAndSurface intersects two surfaces, returning the set of
// intersection curves. Analytic pairs with a recognized configuration
// are answered in closed form (lines, circles, ellipses, point curves);
// any configuration a closed form declines falls through to the marching
// walker, which produces hermite curves. Coincident surfaces return
// ErrDegenerate since a curve list cannot carry "everywhere".
func SurfaceAndSurface(a, b surface.Surface, tol float64, intr Interrupter) ([]curve.Curve, error) {
	tol = floorTol(tol)
	curves, handled, err := closedFormPair(a, b, tol)
	if err != nil {
		return nil, err
	}
	if handled {
		return curves, nil
	}
	return walkIntersection(a, b, tol, intr)
}

// closedFormPair tries both orderings of the dispatch table. handled is
// false when no closed form recognizes the configuration; the walker
// takes over then.
func closedFormPair(a, b surface.Surface, tol float64) (curves []curve.Curve, handled bool, err error) {
	if curves, handled, err = closedForm(a, b, tol); handled || err != nil {
		return
	}
	return closedForm(b, a, tol)
}

func closedForm(a, b surface.Surface, tol float64) ([]curve.Curve, bool, error) {
	switch sa := a.(type) {
	case *surface.Plane:
		switch sb := b.(type) {
		case *surface.Plane:
			return planePlane(sa, sb, tol)
		case *surface.Sphere:
			return planeSphere(sa, sb, tol)
		case *surface.Cylinder:
			return planeCylinder(sa, sb, tol)
		case *surface.Cone:
			return planeCone(sa, sb, tol)
		case *surface.Torus:
			return planeTorus(sa, sb, tol)
		}
	case *surface.Sphere:
		switch sb := b.(type) {
		case *surface.Sphere:
			return sphereSphere(sa, sb, tol)
		case *surface.Cylinder:
			return sphereCylinder(sa, sb, tol)
		case *surface.Cone:
			return sphereCone(sa, sb, tol)
		case *surface.Torus:
			return sphereTorus(sa, sb, tol)
		}
	case *surface.Cylinder:
		switch sb := b.(type) {
		case *surface.Cylinder:
			return cylinderCylinder(sa, sb, tol)
		case *surface.Cone:
			return cylinderCone(sa, sb, tol)
		case *surface.Torus:
			return cylinderTorus(sa, sb, tol)
		}
	case *surface.Cone:
		if sb, ok := b.(*surface.Cone); ok {
			return coneCone(sa, sb, tol)
		}
	}
	return nil, false, nil
}

func parallelUnit(u, v gmath.UnitVector3, tol float64) bool {
	return u.Vec().Cross(v.Vec()).Length() < tol
}

func planePlane(a, b *surface.Plane, tol float64) ([]curve.Curve, bool, error) {
	na, nb := a.Frame.Z, b.Frame.Z
	dir := na.Vec().Cross(nb.Vec())
	if dir.Length() < gmath.Zero {
		if math.Abs(na.Dot(b.Frame.Origin.Sub(a.Frame.Origin))) < tol {
			return nil, true, ErrDegenerate // coincident planes
		}
		return nil, true, nil // parallel, disjoint
	}
	axis := dir.MustUnit()
	// a point on both planes: o = a0 + alpha*na + beta*nb solving the two
	// plane equations, a 2x2 system in the span of the normals
	w := b.Frame.Origin.Sub(a.Frame.Origin)
	nn := na.Dot(nb.Vec())
	det := 1 - nn*nn
	beta := nb.Dot(w) / det
	alpha := -nn * beta
	origin := a.Frame.Origin.Add(na.Vec().Scale(alpha)).Add(nb.Vec().Scale(beta))
	return []curve.Curve{curve.NewLine(origin, axis)}, true, nil
}

func planeSphere(p *surface.Plane, s *surface.Sphere, tol float64) ([]curve.Curve, bool, error) {
	n := p.Frame.Z
	d := n.Dot(s.Frame.Origin.Sub(p.Frame.Origin))
	center := s.Frame.Origin.Add(n.Vec().Scale(-d))
	switch {
	case math.Abs(math.Abs(d)-s.R) < tol:
		return []curve.Curve{curve.NewPointCurve(center)}, true, nil // tangent point
	case math.Abs(d) > s.R:
		return nil, true, nil
	default:
		r := math.Sqrt(s.R*s.R - d*d)
		return []curve.Curve{curve.NewCircle(center, n, r)}, true, nil
	}
}

func planeCylinder(p *surface.Plane, c *surface.Cylinder, tol float64) ([]curve.Curve, bool, error) {
	n := p.Frame.Z
	axis := c.Frame.Z
	cosTheta := math.Abs(n.Dot(axis.Vec()))
	d := n.Dot(c.Frame.Origin.Sub(p.Frame.Origin)) // signed axis-origin height over the plane

	if cosTheta < tol {
		// plane parallel to the axis: zero, one (tangent) or two lines
		switch {
		case math.Abs(math.Abs(d)-c.R) < tol:
			foot := c.Frame.Origin.Add(n.Vec().Scale(-d))
			return []curve.Curve{curve.NewLine(foot, axis)}, true, nil
		case math.Abs(d) > c.R:
			return nil, true, nil
		default:
			off := math.Sqrt(c.R*c.R - d*d)
			side := n.Cross(axis.Vec()).MustUnit()
			foot := c.Frame.Origin.Add(n.Vec().Scale(-d))
			l1 := curve.NewLine(foot.Add(side.Vec().Scale(off)), axis)
			l2 := curve.NewLine(foot.Add(side.Vec().Scale(-off)), axis)
			return []curve.Curve{l1, l2}, true, nil
		}
	}

	// axis pierces the plane at the section center
	tPierce := -n.Dot(c.Frame.Origin.Sub(p.Frame.Origin)) / n.Dot(axis.Vec())
	center := c.Frame.Origin.Add(axis.Vec().Scale(tPierce))
	if 1-cosTheta < tol {
		return []curve.Curve{curve.NewCircle(center, n, c.R)}, true, nil
	}
	// oblique section: ellipse with semi-minor R and semi-major R/cos(theta)
	major := axis.Vec().Minus(n.Vec().Scale(n.Dot(axis.Vec()))).MustUnit()
	return []curve.Curve{curve.NewEllipse(center, n, major, c.R/cosTheta, c.R)}, true, nil
}

func planeCone(p *surface.Plane, c *surface.Cone, tol float64) ([]curve.Curve, bool, error) {
	n := p.Frame.Z
	axis := c.Frame.Z
	if !parallelUnit(n, axis, tol) {
		return nil, false, nil // oblique conic sections go to the walker
	}
	v := axis.Dot(p.Frame.Origin.Sub(c.Frame.Origin)) / axis.Dot(axis.Vec())
	if math.Abs(v) < tol {
		// plane through the apex perpendicular to the axis
		return []curve.Curve{curve.NewPointCurve(c.Frame.Origin)}, true, nil
	}
	if !c.VDom.Contains(v, tol) {
		return nil, true, nil
	}
	center := c.Frame.Origin.Add(axis.Vec().Scale(v))
	return []curve.Curve{curve.NewCircle(center, axis, math.Abs(v*c.Slope))}, true, nil
}

func planeTorus(p *surface.Plane, t *surface.Torus, tol float64) ([]curve.Curve, bool, error) {
	n := p.Frame.Z
	axis := t.Frame.Z
	dCenter := n.Dot(t.Frame.Origin.Sub(p.Frame.Origin))

	if parallelUnit(n, axis, tol) {
		// equatorial-parallel cut: up to two concentric circles
		h := math.Abs(dCenter)
		center := t.Frame.Origin.Add(n.Vec().Scale(-dCenter))
		switch {
		case math.Abs(h-t.RMinor) < tol:
			return []curve.Curve{curve.NewCircle(center, axis, t.RMajor)}, true, nil
		case h > t.RMinor:
			return nil, true, nil
		default:
			w := math.Sqrt(t.RMinor*t.RMinor - h*h)
			outer := curve.NewCircle(center, axis, t.RMajor+w)
			inner := curve.NewCircle(center, axis, t.RMajor-w)
			return []curve.Curve{outer, inner}, true, nil
		}
	}

	if math.Abs(dCenter) < tol {
		sinTilt := n.Vec().Cross(axis.Vec()).Length()
		cosTilt := math.Abs(n.Dot(axis.Vec()))
		if sinTilt < tol {
			// already handled above; keep the dispatch total
			return nil, false, nil
		}
		if cosTilt < tol {
			// plane contains the axis: the two profile circles of the tube
			spoke := n.Cross(axis.Vec()).MustUnit()
			c1 := t.Frame.Origin.Add(spoke.Vec().Scale(t.RMajor))
			c2 := t.Frame.Origin.Add(spoke.Vec().Scale(-t.RMajor))
			return []curve.Curve{curve.NewCircle(c1, n, t.RMinor), curve.NewCircle(c2, n, t.RMinor)}, true, nil
		}
		// Villarceau: through the center, tilted so sin(angle to the
		// equatorial plane) equals RMinor/RMajor
		if math.Abs(sinTilt-t.RMinor/t.RMajor) < gmath.Fit {
			tiltAxis := axis.Cross(n.Vec()).MustUnit()
			c1 := t.Frame.Origin.Add(tiltAxis.Vec().Scale(t.RMinor))
			c2 := t.Frame.Origin.Add(tiltAxis.Vec().Scale(-t.RMinor))
			return []curve.Curve{curve.NewCircle(c1, n, t.RMajor), curve.NewCircle(c2, n, t.RMajor)}, true, nil
		}
	}
	return nil, false, nil
}

func sphereSphere(a, b *surface.Sphere, tol float64) ([]curve.Curve, bool, error) {
	w := b.Frame.Origin.Sub(a.Frame.Origin)
	d := w.Length()
	if d < tol {
		if math.Abs(a.R-b.R) < tol {
			return nil, true, ErrDegenerate // coincident spheres
		}
		return nil, true, nil // concentric, disjoint
	}
	n := w.MustUnit()
	switch {
	case math.Abs(d-(a.R+b.R)) < tol:
		return []curve.Curve{curve.NewPointCurve(a.Frame.Origin.Add(n.Vec().Scale(a.R)))}, true, nil
	case math.Abs(d-math.Abs(a.R-b.R)) < tol:
		dir := 1.0
		if b.R > a.R {
			dir = -1
		}
		return []curve.Curve{curve.NewPointCurve(a.Frame.Origin.Add(n.Vec().Scale(dir * a.R)))}, true, nil
	case d > a.R+b.R || d < math.Abs(a.R-b.R):
		return nil, true, nil
	default:
		// radical plane offset from a's center
		h := (d*d + a.R*a.R - b.R*b.R) / (2 * d)
		r := math.Sqrt(a.R*a.R - h*h)
		center := a.Frame.Origin.Add(n.Vec().Scale(h))
		return []curve.Curve{curve.NewCircle(center, n, r)}, true, nil
	}
}

// axisThrough reports whether the unbounded line (origin,dir) passes
// through p within tol.
func axisThrough(origin gmath.Point3, dir gmath.UnitVector3, p gmath.Point3, tol float64) bool {
	w := p.Sub(origin)
	return w.Minus(dir.Vec().Scale(dir.Dot(w))).Length() < tol
}

func sphereCylinder(s *surface.Sphere, c *surface.Cylinder, tol float64) ([]curve.Curve, bool, error) {
	if !axisThrough(c.Frame.Origin, c.Frame.Z, s.Frame.Origin, tol) {
		return nil, false, nil
	}
	switch {
	case math.Abs(s.R-c.R) < tol:
		// tangent along the equator circle
		return []curve.Curve{curve.NewCircle(s.Frame.Origin, c.Frame.Z, c.R)}, true, nil
	case s.R < c.R:
		return nil, true, nil
	default:
		h := math.Sqrt(s.R*s.R - c.R*c.R)
		up := s.Frame.Origin.Add(c.Frame.Z.Vec().Scale(h))
		dn := s.Frame.Origin.Add(c.Frame.Z.Vec().Scale(-h))
		return []curve.Curve{curve.NewCircle(up, c.Frame.Z, c.R), curve.NewCircle(dn, c.Frame.Z, c.R)}, true, nil
	}
}

func sphereCone(s *surface.Sphere, c *surface.Cone, tol float64) ([]curve.Curve, bool, error) {
	if !axisThrough(c.Frame.Origin, c.Frame.Z, s.Frame.Origin, tol) {
		return nil, false, nil
	}
	// sphere centered on the axis at height h above the apex; circles at
	// cone heights v where dist((v*slope, v), (0,h)) = R
	h := c.Frame.Z.Dot(s.Frame.Origin.Sub(c.Frame.Origin))
	k := c.Slope * c.Slope
	roots := gmath.SolveQuadratic(1+k, -2*h, h*h-s.R*s.R)
	var out []curve.Curve
	for _, v := range roots {
		if !c.VDom.Contains(v, tol) {
			continue
		}
		r := math.Abs(v * c.Slope)
		center := c.Frame.Origin.Add(c.Frame.Z.Vec().Scale(v))
		if r < tol {
			out = append(out, curve.NewPointCurve(center))
			continue
		}
		out = append(out, curve.NewCircle(center, c.Frame.Z, r))
	}
	return out, true, nil
}

func sphereTorus(s *surface.Sphere, t *surface.Torus, tol float64) ([]curve.Curve, bool, error) {
	if gmath.Distance(s.Frame.Origin, t.Frame.Origin) > tol {
		return nil, false, nil
	}
	// center-centered sphere: circles where the tube cross-section circle
	// ((rho-R)^2 + z^2 = r^2) meets rho^2 + z^2 = Rs^2
	// subtracting: rho = (Rs^2 + R^2 - r^2) / (2R)
	rho := (s.R*s.R + t.RMajor*t.RMajor - t.RMinor*t.RMinor) / (2 * t.RMajor)
	z2 := s.R*s.R - rho*rho
	if z2 < -tol {
		return nil, true, nil
	}
	if z2 < 0 {
		z2 = 0
	}
	z := math.Sqrt(z2)
	var out []curve.Curve
	if rho < tol {
		return nil, true, nil
	}
	up := t.Frame.Origin.Add(t.Frame.Z.Vec().Scale(z))
	out = append(out, curve.NewCircle(up, t.Frame.Z, rho))
	if z > tol {
		dn := t.Frame.Origin.Add(t.Frame.Z.Vec().Scale(-z))
		out = append(out, curve.NewCircle(dn, t.Frame.Z, rho))
	}
	return out, true, nil
}

func cylinderCylinder(a, b *surface.Cylinder, tol float64) ([]curve.Curve, bool, error) {
	if !parallelUnit(a.Frame.Z, b.Frame.Z, tol) {
		return nil, false, nil // crossing cylinders go to the walker
	}
	// parallel axes: work in a's cross-section plane
	w := b.Frame.Origin.Sub(a.Frame.Origin)
	w = w.Minus(a.Frame.Z.Vec().Scale(a.Frame.Z.Dot(w)))
	d := w.Length()
	if d < tol {
		if math.Abs(a.R-b.R) < tol {
			return nil, true, ErrDegenerate // coincident cylinders
		}
		return nil, true, nil
	}
	n := w.MustUnit()
	switch {
	case math.Abs(d-(a.R+b.R)) < tol || math.Abs(d-math.Abs(a.R-b.R)) < tol:
		// externally or internally tangent: one line
		foot := a.Frame.Origin.Add(n.Vec().Scale(a.R))
		if math.Abs(d-math.Abs(a.R-b.R)) < tol && b.R > a.R {
			foot = a.Frame.Origin.Add(n.Vec().Scale(-a.R))
		}
		return []curve.Curve{curve.NewLine(foot, a.Frame.Z)}, true, nil
	case d > a.R+b.R || d < math.Abs(a.R-b.R):
		return nil, true, nil
	default:
		// two lines through the cross-section circle intersections
		h := (d*d + a.R*a.R - b.R*b.R) / (2 * d)
		off := math.Sqrt(a.R*a.R - h*h)
		side := a.Frame.Z.Cross(n.Vec()).MustUnit()
		p1 := a.Frame.Origin.Add(n.Vec().Scale(h)).Add(side.Vec().Scale(off))
		p2 := a.Frame.Origin.Add(n.Vec().Scale(h)).Add(side.Vec().Scale(-off))
		return []curve.Curve{curve.NewLine(p1, a.Frame.Z), curve.NewLine(p2, a.Frame.Z)}, true, nil
	}
}

// coaxial reports whether two axes are the same unbounded line.
func coaxial(o1 gmath.Point3, d1 gmath.UnitVector3, o2 gmath.Point3, d2 gmath.UnitVector3, tol float64) bool {
	return parallelUnit(d1, d2, tol) && axisThrough(o1, d1, o2, tol)
}

func cylinderCone(cy *surface.Cylinder, co *surface.Cone, tol float64) ([]curve.Curve, bool, error) {
	if !coaxial(cy.Frame.Origin, cy.Frame.Z, co.Frame.Origin, co.Frame.Z, tol) {
		return nil, false, nil
	}
	// circle where the cone's radius equals the cylinder's
	if math.Abs(co.Slope) < gmath.Zero {
		return nil, true, ErrDegenerate // slope-zero cone degenerates to a cylinder
	}
	v := cy.R / math.Abs(co.Slope)
	var out []curve.Curve
	for _, vv := range []float64{v, -v} {
		if !co.VDom.Contains(vv, tol) {
			continue
		}
		center := co.Frame.Origin.Add(co.Frame.Z.Vec().Scale(vv))
		out = append(out, curve.NewCircle(center, co.Frame.Z, cy.R))
	}
	return out, true, nil
}

func cylinderTorus(cy *surface.Cylinder, t *surface.Torus, tol float64) ([]curve.Curve, bool, error) {
	if !coaxial(cy.Frame.Origin, cy.Frame.Z, t.Frame.Origin, t.Frame.Z, tol) {
		return nil, false, nil // asymmetric configurations go to the walker
	}
	// coaxial: circles at tube angles where RMajor + RMinor*cos(v) = R
	cosV := (cy.R - t.RMajor) / t.RMinor
	if math.Abs(cosV) > 1+tol {
		return nil, true, nil
	}
	cosV = gmath.Clamp(cosV, -1, 1)
	z := t.RMinor * math.Sqrt(1-cosV*cosV)
	var out []curve.Curve
	up := t.Frame.Origin.Add(t.Frame.Z.Vec().Scale(z))
	out = append(out, curve.NewCircle(up, t.Frame.Z, cy.R))
	if z > tol {
		dn := t.Frame.Origin.Add(t.Frame.Z.Vec().Scale(-z))
		out = append(out, curve.NewCircle(dn, t.Frame.Z, cy.R))
	}
	return out, true, nil
}

func coneCone(a, b *surface.Cone, tol float64) ([]curve.Curve, bool, error) {
	if !coaxial(a.Frame.Origin, a.Frame.Z, b.Frame.Origin, b.Frame.Z, tol) {
		return nil, false, nil
	}
	sameDir := a.Frame.Z.Dot(b.Frame.Z.Vec()) > 0
	apexGap := a.Frame.Z.Dot(b.Frame.Origin.Sub(a.Frame.Origin))
	if math.Abs(apexGap) < tol {
		// shared apex
		if sameDir && math.Abs(a.Slope-b.Slope) < tol {
			return nil, true, ErrDegenerate // coincident cones
		}
		// opposite axes or different slopes: only the apex is shared
		return []curve.Curve{curve.NewPointCurve(a.Frame.Origin)}, true, nil
	}
	// distinct apexes on a common axis: circle where radii agree
	sb := b.Slope
	if !sameDir {
		sb = -sb
	}
	if math.Abs(a.Slope-sb) < gmath.Zero {
		return nil, true, nil // equal slopes never meet off-apex
	}
	v := sb * apexGap / (sb - a.Slope)
	// height v on a's axis; radius must match on both and be in range
	r := math.Abs(v * a.Slope)
	vb := a.Frame.Z.Dot(a.Frame.Origin.Add(a.Frame.Z.Vec().Scale(v)).Sub(b.Frame.Origin))
	if !sameDir {
		vb = -vb
	}
	if !a.VDom.Contains(v, tol) || !b.VDom.Contains(vb, tol) {
		return nil, true, nil
	}
	center := a.Frame.Origin.Add(a.Frame.Z.Vec().Scale(v))
	if r < tol {
		return []curve.Curve{curve.NewPointCurve(center)}, true, nil
	}
	return []curve.Curve{curve.NewCircle(center, a.Frame.Z, r)}, true, nil
}
