package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"spectra/spectrum/hist"
)

func checkBin(h *hist.Histogram, bin int) error {
	if bin < 0 || bin >= h.Size() {
		return fmt.Errorf("bin %d out of range [0, %d)", bin, h.Size())
	}
	return nil
}

func printBin(w io.Writer, h *hist.Histogram, i int) {
	b := h.Bin(i)
	fmt.Fprintf(w, "%d\t[%g, %g)\t%g +/- %g\n", i, b.Low, b.High, b.Value, b.Error)
}

// datasetName 去掉目录, 作为报告里的实验名
func datasetName(path string) string {
	return filepath.Base(path)
}

// readSamples 读取空白分隔的原始样本
func readSamples(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	var out []float64
	for sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: sample %d: %w", path, len(out), err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
