package errCode

type Code int

const (
	UNKNOWN Code = iota
	INVALID_VALUE
	EMPTY_VALUE
	PARSE_ERROR        // 数据源不可读或 token 非法
	INVARIANT_VIOLATED // edges/values/errors 数量不一致
	INCOMPATIBLE_SHAPE // 两个直方图分箱不一致
	DEGENERATE_WEIGHT  // 误差为零, 无法作为权重或分母
)

func (c Code) String() string {
	switch c {
	case INVALID_VALUE:
		return "invalid value"
	case EMPTY_VALUE:
		return "empty value"
	case PARSE_ERROR:
		return "parse error"
	case INVARIANT_VIOLATED:
		return "invariant violated"
	case INCOMPATIBLE_SHAPE:
		return "incompatible shape"
	case DEGENERATE_WEIGHT:
		return "degenerate weight"
	default:
		return "unknown"
	}
}
