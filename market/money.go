package market

// KRW and USD are money amounts tagged with their currency. The source of
// most bookkeeping bugs in this strategy is mixing the investor's home
// currency (the cash ledger) with the instrument's trading currency (the
// price series), so the two never share a type.
type (
	KRW float64
	USD float64
)

// FXRate is the KRW-per-USD conversion, constant for an entire run. There
// is no intraday FX modeling.
type FXRate float64

func (r FXRate) ToKRW(a USD) KRW { return KRW(float64(a) * float64(r)) }

func (r FXRate) ToUSD(a KRW) USD { return USD(float64(a) / float64(r)) }
