package allocator

// Quote is the price used to buy an asset.
//
// Buffer is added on top of the market price, it simulates paying more
// than the last trade, for instance to be filled at the limit up price.
type Quote struct {
	Code   string
	Price  Money
	Buffer Money

	// set by Set and SetBuffer, so that an explicit zero still overrides.
	priceSet, bufferSet bool
}

// EffectivePrice is the price used for all cost computations.
func (q Quote) EffectivePrice() Money { return q.Price.Add(q.Buffer) }

// Quotes indexes quotes by asset code.
type Quotes map[string]Quote

// NewQuotes indexes a list of quotes. Later quotes override earlier ones.
func NewQuotes(qs ...Quote) Quotes {
	m := make(Quotes, len(qs))
	for _, q := range qs {
		m[q.Code] = q
	}
	return m
}

// Get returns the quote for 'code'. An unknown code has a zero price, which
// means the asset cannot be traded.
func (qs Quotes) Get(code string) Quote {
	q, ok := qs[code]
	if !ok {
		return Quote{Code: code}
	}
	q.Code = code
	return q
}

// Set records a market price for code, keeping any existing buffer.
func (qs Quotes) Set(code string, price Money) {
	q := qs.Get(code)
	q.Price = price
	q.priceSet = true
	qs[code] = q
}

// SetBuffer records a price buffer for code, keeping any existing price.
func (qs Quotes) SetBuffer(code string, buffer Money) {
	q := qs.Get(code)
	q.Buffer = buffer
	q.bufferSet = true
	qs[code] = q
}

// Merge returns a copy of qs where prices and buffers set in 'over' win.
// A zero amount in 'over' only wins when it was recorded with Set or
// SetBuffer.
func (qs Quotes) Merge(over Quotes) Quotes {
	m := make(Quotes, len(qs)+len(over))
	for c, q := range qs {
		m[c] = q
	}
	for c, q := range over {
		base := m.Get(c)
		if q.priceSet || !q.Price.IsZero() {
			base.Price = q.Price
			base.priceSet = base.priceSet || q.priceSet
		}
		if q.bufferSet || !q.Buffer.IsZero() {
			base.Buffer = q.Buffer
			base.bufferSet = base.bufferSet || q.bufferSet
		}
		m[c] = base
	}
	return m
}
