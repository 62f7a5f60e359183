package hist

// 持久化文本格式:
//
//	N
//	edge_0 edge_1 ... edge_N
//	value_0 ... value_{N-1}
//	error_0 ... error_{N-1}
//
// token 以空白分隔, 换行只是排版. 读取恰好 1+(N+1)+N+N 个 token, 之后的内容忽略.

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
)

// 预分配上限, 避免损坏文件中的超大 N 一次性申请内存
const maxPrealloc = 1 << 12

// N 的上限: 3N+1 个 token 的计数不能溢出 int
const maxBins = (math.MaxInt - 1) / 3

type tokenReader struct {
	sc  *bufio.Scanner
	pos int // 已读取 token 数
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next(section string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", errorx.Wrap(errCode.PARSE_ERROR, err, "read "+section)
		}
		return "", errorx.Newf(errCode.PARSE_ERROR, "unexpected end of input at token %d (%s)", t.pos, section)
	}
	t.pos++
	return t.sc.Text(), nil
}

func (t *tokenReader) floats(n int, section string) ([]float64, error) {
	out := make([]float64, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		tok, err := t.next(section)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, errorx.Wrap(errCode.PARSE_ERROR, err,
				"token "+strconv.Itoa(t.pos-1)+" ("+section+" "+strconv.Itoa(i)+")")
		}
		out = append(out, v)
	}
	return out, nil
}

// FromPersisted 从持久化文本解析 Histogram.
// 读失败、token 不足或非法返回 PARSE_ERROR, 数量/单调性检查失败返回 INVARIANT_VIOLATED.
func FromPersisted(r io.Reader) (*Histogram, error) {
	tr := newTokenReader(r)

	tok, err := tr.next("bin count")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, errorx.Wrap(errCode.PARSE_ERROR, err, "token 0 (bin count)")
	}
	if n < 0 {
		return nil, errorx.Newf(errCode.PARSE_ERROR, "negative bin count %d", n)
	}
	if n > maxBins {
		return nil, errorx.Newf(errCode.PARSE_ERROR, "bin count %d exceeds %d", n, maxBins)
	}

	edges, err := tr.floats(n+1, "edge")
	if err != nil {
		return nil, err
	}
	values, err := tr.floats(n, "value")
	if err != nil {
		return nil, err
	}
	errs, err := tr.floats(n, "error")
	if err != nil {
		return nil, err
	}
	return newHistogram(edges, values, errs)
}

// Load 打开文件并解析, 任何路径上都会关闭文件
func Load(path string) (*Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorx.Wrap(errCode.PARSE_ERROR, err, "could not open file with name: "+path)
	}
	defer f.Close()

	h, err := FromPersisted(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Write 按持久化格式写出一组分箱数据, 写之前检查数量关系.
func Write(w io.Writer, edges, values, errs []float64) error {
	if len(edges) != len(values)+1 || len(errs) != len(values) {
		return errorx.Newf(errCode.INVARIANT_VIOLATED,
			"cannot write %d edges, %d values, %d errors", len(edges), len(values), len(errs))
	}
	_, err := w.Write(encode(edges, values, errs))
	return err
}

// WriteTo implements io.WriterTo.
func (h *Histogram) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(encode(h.edges, h.values, h.errors))
	return int64(n), err
}

func encode(edges, values, errs []float64) []byte {
	buf := make([]byte, 0, 16+24*(len(edges)+len(values)+len(errs)))
	buf = strconv.AppendInt(buf, int64(len(values)), 10)
	buf = append(buf, '\n')
	for _, line := range [][]float64{edges, values, errs} {
		for i, v := range line {
			if i > 0 {
				buf = append(buf, ' ')
			}
			// shortest representation that parses back to the same float64
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
	}
	return buf
}
