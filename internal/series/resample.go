package series

import (
	"time"

	"CryptoPulse/internal/model"
)

// Resample groups a cleaned series into fixed-width OHLC candles.
// Each point lands in the bucket floor(ts/width)*width; within a bucket
// open is the earliest sample, close the latest, high/low the extremes.
// Empty buckets produce no candle, so gaps stay gaps.
func Resample(s model.HistorySeries, width time.Duration) []model.Candle {
	if len(s) == 0 || width <= 0 {
		return nil
	}
	wms := width.Milliseconds()
	var out []model.Candle
	var cur *model.Candle

	for _, p := range s {
		ms := p.Time.UnixMilli()
		start := time.UnixMilli(ms - ms%wms).UTC()
		if cur == nil || !cur.BucketStart.Equal(start) {
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &model.Candle{
				BucketStart: start,
				Open:        p.Price,
				High:        p.Price,
				Low:         p.Price,
				Close:       p.Price,
			}
			continue
		}
		if p.Price > cur.High {
			cur.High = p.Price
		}
		if p.Price < cur.Low {
			cur.Low = p.Price
		}
		cur.Close = p.Price
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// BucketWidth picks the candle width for a lookback window, mirroring
// the interval ladder of the upstream history API.
func BucketWidth(lookback time.Duration) time.Duration {
	switch {
	case lookback <= 6*time.Hour:
		return time.Minute
	case lookback <= 24*time.Hour:
		return 5 * time.Minute
	case lookback <= 7*24*time.Hour:
		return time.Hour
	default:
		return 24 * time.Hour
	}
}
