// Package domain models daily city temperature observations and their
// monthly aggregation.
//
// # Data Source
//
// Daily observations arrive as a delimited text file with one row per day
// and three named columns: a calendar date, the day's maximum temperature and
// the day's minimum temperature, both in degrees Celsius. The reference
// dataset is the Hong Kong Observatory daily extremes series, which begins
// in the late 1990s; only years from [DefaultMinYear] onward are visualized.
//
// # Parsing Conventions
//
// Dates:
//
//	ISO calendar dates ("2008-01-05") are the canonical form. Slash-separated
//	dates ("2008/01/05", "2008/1/5"), RFC 3339 timestamps and
//	"2006-01-02 15:04:05" timestamps are also accepted. All dates are
//	interpreted in UTC so the year and month of a row never depend on the
//	host time zone.
//
// Temperatures:
//
//	Decimal strings such as "15.3" or "-1". Empty and non-numeric values do
//	not fail the row; they become NaN, matching the permissive coercion of
//	the spreadsheet exports this data usually comes from.
//
// Unparseable dates are the one row-level failure: [ParseDailyRow] returns
// an error and the loader rejects the row rather than grouping it under an
// invalid key.
//
// # Aggregation
//
// [Aggregate] groups records by (year, month) where month is 0-based
// (January = 0). Per bucket:
//
//	MaxTemperature = max of the daily MaxTemperature values
//	MinTemperature = min of the daily MinTemperature values
//	DailyValues    = the bucket's records in input order
//
// NaN values are skipped when computing the extremes but the records stay in
// DailyValues so the sparkline can show the gap. A bucket whose values are
// all NaN for a field reports NaN for that field. Buckets appear in the order
// their key is first seen; no bucket exists without at least one record.
package domain
