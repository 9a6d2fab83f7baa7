package cloth

import (
	"testing"

	"github.com/san-kum/clothsim/internal/integrators"
)

func benchmarkStep(b *testing.B, dim, workers int, scheme integrators.Scheme) {
	cfg := DefaultConfig()
	cfg.Dimension = dim
	cfg.Workers = workers
	cfg.MeshRendered = true
	c, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Step(0.01, scheme); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStep_Euler10(b *testing.B)    { benchmarkStep(b, 10, 1, integrators.Euler) }
func BenchmarkStep_Midpoint10(b *testing.B) { benchmarkStep(b, 10, 1, integrators.Midpoint) }
func BenchmarkStep_Euler64(b *testing.B)    { benchmarkStep(b, 64, 1, integrators.Euler) }
func BenchmarkStep_Euler64x4(b *testing.B)  { benchmarkStep(b, 64, 4, integrators.Euler) }
