package main

// tsweep enumerates every Clifford+T unitary reachable per T count, level by
// level, and reports how the levels grow: per-level counts and fingerprints
// as JSON lines, growth statistics, and an optional HTML growth chart.

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"
	"gonum.org/v1/gonum/stat"

	"cliffordt-synth/prof"
	"cliffordt-synth/su2"
)

type levelRecord struct {
	TCount      int    `json:"t_count"`
	Size        int    `json:"size"`
	Cumulative  int    `json:"cumulative"`
	Fingerprint string `json:"fingerprint"`
	ElapsedUS   int64  `json:"elapsed_us"`
}

func main() {
	maxTs := flag.Int("max-ts", 6, "largest T count to enumerate")
	jsonPath := flag.String("json", "", "write per-level records as JSON lines")
	chartPath := flag.String("chart", "", "write an HTML growth chart")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	var enc *json.Encoder
	if *jsonPath != "" {
		f, err := os.Create(*jsonPath)
		if err != nil {
			log.Fatal().Err(err).Msg("creating JSON output")
		}
		defer f.Close()
		buf := bufio.NewWriter(f)
		defer buf.Flush()
		enc = json.NewEncoder(buf)
	}

	warmStart := time.Now()
	su2.WarmTables()
	prof.Track(warmStart, "warm_tables")

	records := make([]levelRecord, 0, *maxTs+1)
	cumulative := 0
	levelStart := time.Now()
	for t, rots := range su2.GenerateRotationsIter() {
		elapsed := time.Since(levelStart)
		prof.Track(levelStart, "expand_level")
		cumulative += len(rots)
		rec := levelRecord{
			TCount:      t,
			Size:        len(rots),
			Cumulative:  cumulative,
			Fingerprint: fingerprintLevel(rots),
			ElapsedUS:   elapsed.Microseconds(),
		}
		records = append(records, rec)
		log.Info().Int("t_count", t).Int("size", len(rots)).
			Int("cumulative", cumulative).Str("fp", rec.Fingerprint).
			Dur("elapsed", elapsed).Msg("level complete")
		if enc != nil {
			if err := enc.Encode(rec); err != nil {
				log.Fatal().Err(err).Msg("writing JSON record")
			}
		}
		if t >= *maxTs {
			break
		}
		levelStart = time.Now()
	}

	// Growth ratio statistics over consecutive levels; level 0 is the
	// Clifford table and is excluded from the ratios.
	ratios := make([]float64, 0, len(records)-2)
	for i := 2; i < len(records); i++ {
		ratios = append(ratios, float64(records[i].Size)/float64(records[i-1].Size))
	}
	if len(ratios) > 0 {
		mean, std := stat.MeanStdDev(ratios, nil)
		log.Info().Float64("mean_growth", mean).Float64("stddev", std).Msg("growth statistics")
	}

	if *chartPath != "" {
		if err := renderChart(*chartPath, records); err != nil {
			log.Fatal().Err(err).Msg("rendering chart")
		}
		log.Info().Str("path", *chartPath).Msg("chart written")
	}

	for _, e := range prof.Drain() {
		log.Info().Str("stage", e.Label).Dur("total", e.Dur).Int("count", e.Count).Msg("timing")
	}
}

// fingerprintLevel digests the canonical keys of one level in generation
// order, pinning both contents and ordering.
func fingerprintLevel(rots []su2.SU2CliffordT) string {
	h := sha3.NewShake256()
	for _, r := range rots {
		h.Write([]byte(r.Key()))
		h.Write([]byte{'\n'})
	}
	out := make([]byte, 16)
	h.Read(out)
	return hex.EncodeToString(out)
}

func renderChart(path string, records []levelRecord) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Clifford+T unitaries per T count",
			Subtitle: "distinct unitaries up to global sign",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "T count"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count", Type: "log"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	xs := make([]string, 0, len(records))
	perLevel := make([]opts.LineData, 0, len(records))
	cumulative := make([]opts.LineData, 0, len(records))
	for _, r := range records {
		xs = append(xs, fmt.Sprintf("%d", r.TCount))
		perLevel = append(perLevel, opts.LineData{Value: r.Size})
		cumulative = append(cumulative, opts.LineData{Value: r.Cumulative})
	}
	line.SetXAxis(xs).
		AddSeries("per level", perLevel).
		AddSeries("cumulative", cumulative)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return line.Render(f)
}
