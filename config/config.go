package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"spectra/infra/logx"
	"spectra/spectrum/hist"
	"spectra/spectrum/model"
)

type Config struct {
	DOF        float64          `yaml:"dof"`        // 约化卡方的自由度
	Sigma      float64          `yaml:"sigma"`      // 兼容性检验的标准差倍数
	ReportBin  int              `yaml:"report_bin"` // report 输出的分箱
	Datasets   []string         `yaml:"datasets"`   // 相对路径以配置文件所在目录为基准
	Background model.Background `yaml:"background"`
	Log        logx.Options     `yaml:"log"`
}

func Default() *Config {
	return &Config{
		DOF:        hist.DEFAULT_DOF,
		Sigma:      2,
		ReportBin:  27,
		Background: model.DefaultBackground(),
		Log:        logx.DefaultOptions(),
	}
}

// 用 atomic.Value 存当前配置，支持热更新时无锁读取
var cfgValue atomic.Value // stores *Config

// Load 读取 yaml, 未出现的字段保留默认值
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	// 规范化数据集路径: 去空格, 相对路径挂到配置目录下
	base := filepath.Dir(path)
	norm := make([]string, 0, len(c.Datasets))
	for _, ds := range c.Datasets {
		ds = strings.TrimSpace(ds)
		if ds == "" {
			continue
		}
		if !filepath.IsAbs(ds) {
			ds = filepath.Join(base, ds)
		}
		norm = append(norm, ds)
	}
	c.Datasets = norm
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if !(c.DOF > 0) {
		return fmt.Errorf("invalid dof: %g", c.DOF)
	}
	if !(c.Sigma >= 0) {
		return fmt.Errorf("invalid sigma: %g", c.Sigma)
	}
	if c.ReportBin < 0 {
		return fmt.Errorf("invalid report_bin: %d", c.ReportBin)
	}
	return nil
}

func Init(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	cfgValue.Store(c)
	return nil
}

// Current 返回 Init 加载的配置, 未初始化时返回默认值
func Current() *Config {
	cAny := cfgValue.Load()
	if cAny == nil {
		return Default()
	}
	return cAny.(*Config)
}
