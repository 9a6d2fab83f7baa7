package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/sim"
)

func runCloth(t *testing.T) (*cloth.Cloth, *sim.Result) {
	t.Helper()
	cfg := cloth.DefaultConfig()
	cfg.Dimension = 4
	c, err := cloth.New(cfg)
	if err != nil {
		t.Fatalf("cloth.New: %v", err)
	}
	result, err := sim.New().Run(context.Background(), c, sim.RunConfig{
		Dt: 0.1, Duration: 1, Scheme: integrators.Euler,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	result.Metrics["sag"] = -0.5
	return c, result
}

func TestStoreSaveLoad(t *testing.T) {
	g := NewWithT(t)
	st := New(t.TempDir())
	g.Expect(st.Init()).To(Succeed())

	c, result := runCloth(t)
	runID, err := st.Save(RunInfo{
		Preset: "drape",
		Width:  c.Width(),
		Height: c.Height(),
		Scheme: "euler",
		Dt:     0.1,
		Pinned: []int{3, 15},
	}, result)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runID).To(HavePrefix("drape_"))

	meta, err := st.Load(runID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(meta.ID).To(Equal(runID))
	g.Expect(meta.Width).To(Equal(4))
	g.Expect(meta.Steps).To(Equal(10))
	g.Expect(meta.Pinned).To(Equal([]int{3, 15}))
	g.Expect(meta.Metrics).To(HaveKeyWithValue("sag", -0.5))
	g.Expect(meta.Timestamp.IsZero()).To(BeFalse())

	series, err := st.LoadSeries(runID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(series.Times).To(Equal(result.Times))
	g.Expect(series.Centers).To(Equal(result.Centers))
	g.Expect(series.MinY).To(Equal(result.MinY))

	final, err := st.LoadFinal(runID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(final).To(Equal(c.Positions()))
}

func TestStoreDefaultName(t *testing.T) {
	g := NewWithT(t)
	st := New(t.TempDir())
	_, result := runCloth(t)

	runID, err := st.Save(RunInfo{}, result)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runID).To(HavePrefix("cloth_"))
}

func TestStoreSave_NoFrames(t *testing.T) {
	_, err := New(t.TempDir()).Save(RunInfo{}, &sim.Result{})
	NewWithT(t).Expect(err).To(MatchError(ErrNoFinalFrame))
}

func TestStoreList(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runs).To(BeEmpty())

	_, result := runCloth(t)
	first, err := st.Save(RunInfo{Preset: "a"}, result)
	g.Expect(err).NotTo(HaveOccurred())
	second, err := st.Save(RunInfo{Preset: "b"}, result)
	g.Expect(err).NotTo(HaveOccurred())

	// stray entries are skipped
	g.Expect(os.MkdirAll(filepath.Join(dir, "junk"), 0755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "note.txt"), []byte("x"), 0644)).To(Succeed())

	runs, err = st.List()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runs).To(HaveLen(2))
	g.Expect(runs[0].ID).To(Equal(second))
	g.Expect(runs[1].ID).To(Equal(first))
}

func TestStoreList_MissingDir(t *testing.T) {
	g := NewWithT(t)
	runs, err := New(filepath.Join(t.TempDir(), "missing")).List()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runs).To(BeEmpty())
}

func TestStoreLoad_Missing(t *testing.T) {
	g := NewWithT(t)
	st := New(t.TempDir())

	_, err := st.Load("nope")
	g.Expect(err).To(HaveOccurred())
	_, err = st.LoadSeries("nope")
	g.Expect(err).To(HaveOccurred())
	_, err = st.LoadFinal("nope")
	g.Expect(err).To(HaveOccurred())
}

func TestLoadFinal_BadIndex(t *testing.T) {
	g := NewWithT(t)
	dir := t.TempDir()
	g.Expect(os.MkdirAll(filepath.Join(dir, "run"), 0755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(dir, "run", "final.csv"), []byte("index,x,y,z\n5,0,0,0\n"), 0644)).To(Succeed())

	_, err := New(dir).LoadFinal("run")
	g.Expect(err).To(MatchError(ContainSubstring("out of range")))
}
