package geom_test

import (
	"fmt"
	"log"

	"honnef.co/go/geom"
)

func ExampleAffine() {
	// Scale first, then translate.
	a := geom.NewTranslate(10, 0)
	a.Scale(2, 2)
	fmt.Println(a.TransformPoint(geom.Pt(1, 1)))
	fmt.Println(a.Type())

	inv, err := a.Inverse()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(inv.TransformPoint(geom.Pt(12, 2)))
	// Output:
	// (12, 2)
	// Translation|UniformScale
	// (1, 1)
}

func ExamplePath() {
	p, err := geom.NewPath(geom.WindNonZero)
	if err != nil {
		log.Fatal(err)
	}
	p.MoveTo(0, 0)
	if err := p.LineTo(10, 0); err != nil {
		log.Fatal(err)
	}
	if err := p.QuadTo(10, 10, 0, 10); err != nil {
		log.Fatal(err)
	}
	if err := p.ClosePath(); err != nil {
		log.Fatal(err)
	}

	for seg := range p.Segments() {
		fmt.Println(seg)
	}
	fmt.Println(p.Bounds())
	// Output:
	// MoveTo (0, 0)
	// LineTo (10, 0)
	// QuadTo (10, 10) (0, 10)
	// Close
	// Rect{(0, 0), (10, 10)}
}

func ExampleNewFlatteningIterator() {
	p, err := geom.NewPath(geom.WindEvenOdd)
	if err != nil {
		log.Fatal(err)
	}
	p.MoveTo(0, 0)
	if err := p.QuadTo(50, 100, 100, 0); err != nil {
		log.Fatal(err)
	}

	// With a flatness of zero, every curve is split the maximum number of
	// times: twice, giving four lines.
	it, err := geom.NewFlatteningIterator(p.PathIterator(nil), 0, geom.WithRecursionLimit(2))
	if err != nil {
		log.Fatal(err)
	}
	for seg := range geom.Segments(it) {
		fmt.Println(seg)
	}
	// Output:
	// MoveTo (0, 0)
	// LineTo (25, 37.5)
	// LineTo (50, 50)
	// LineTo (75, 37.5)
	// LineTo (100, 0)
}
