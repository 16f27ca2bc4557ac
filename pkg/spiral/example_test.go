package spiral_test

import (
	"fmt"

	"github.com/matzehuels/lyricspiral/pkg/spiral"
)

func ExampleLayout() {
	glyphs := spiral.Layout("Hi!", spiral.DefaultConfig())
	for _, g := range glyphs {
		fmt.Printf("%s x=%.2f y=%.2f angle=%.2f size=%.0f\n", g.Char, g.X, g.Y, g.Angle, g.FontSize)
	}
	// Output:
	// H x=410.00 y=325.00 angle=90.00 size=34
	// i x=410.59 y=345.95 angle=103.75 size=34
	// ! x=406.18 y=366.39 angle=117.02 size=34
}

func ExampleSelect() {
	for _, n := range []int{50, 450, 3000} {
		p := spiral.Select(n, false)
		fmt.Printf("%d chars: font=%.0f radius=%.0f pitch=%.2f\n", n, p.FontSize, p.StartRadius, p.PitchMultiplier)
	}
	// Print mode uses its own start radius column.
	p := spiral.Select(5000, true)
	fmt.Printf("5000 chars (print): font=%.0f radius=%.0f pitch=%.2f\n", p.FontSize, p.StartRadius, p.PitchMultiplier)
	// Output:
	// 50 chars: font=34 radius=85 pitch=2.40
	// 450 chars: font=23 radius=85 pitch=2.40
	// 3000 chars: font=10 radius=75 pitch=1.55
	// 5000 chars (print): font=7 radius=70 pitch=1.35
}

func ExampleCompute() {
	res := spiral.Compute("spiral", spiral.Config{CanvasSize: 1000, PrintMode: true})
	fmt.Printf("glyphs=%d start=%.0f first=(%.0f, %.0f)\n",
		len(res.Glyphs), res.Params.StartRadius, res.Glyphs[0].X, res.Glyphs[0].Y)
	// Output:
	// glyphs=6 start=90 first=(590, 500)
}
