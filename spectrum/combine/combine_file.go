package combine

import (
	"errors"
	"fmt"
	"os"

	"spectra/infra/errorx"
	"spectra/infra/errorx/errCode"
	"spectra/spectrum/hist"
)

// CombineFiles 读取 srcs, 从左到右链式合并后写入 dst.
// native 为 true 时用 CombineN 一次性合并. 失败时删除写了一半的 dst.
func CombineFiles(dst string, native bool, srcs ...string) (err error) {
	if len(srcs) < 2 {
		return errorx.Newf(errCode.EMPTY_VALUE, "need at least 2 sources, got %d", len(srcs))
	}
	hs := make([]*hist.Histogram, 0, len(srcs))
	for _, src := range srcs {
		h, err := hist.Load(src)
		if err != nil {
			return err
		}
		hs = append(hs, h)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, cerr)
		}
		if err != nil {
			err = errors.Join(err, removeIfExists(dst))
		}
	}()

	if native {
		return CombineN(hs, f)
	}
	return Chain(hs, f)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
