//-------------------------------------------------------------------------
//
// Retail Data Warehouse ETL
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package transform builds the dimensional model from flat source records.
// Every function is pure: lookups are passed in and returned explicitly so
// each stage can be exercised in isolation.
package transform

import (
	"errors"
	"sort"
	"time"

	"github.com/retaildw/retaildw/internal/model"
)

// dateLayout is the ISO date format used throughout the source files.
const dateLayout = "2006-01-02"

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// BuildDateDim derives one calendar row per distinct order date observed in
// the order set, plus a lookup from the raw order_date string to its
// date_id. Rows are returned in calendar order. An empty order set yields
// an empty dimension.
func BuildDateDim(orders []model.Order) ([]model.DateDim, map[string]int, error) {
	lookup := make(map[string]int, len(orders))
	seen := make(map[int]model.DateDim)

	for _, o := range orders {
		if _, ok := lookup[o.OrderDate]; ok {
			continue
		}

		d, err := time.Parse(dateLayout, o.OrderDate)
		if err != nil {
			return nil, nil, &model.DataTypeError{
				Set:   "orders",
				Field: "order_date",
				Value: o.OrderDate,
				Err:   errors.New("not an ISO date"),
			}
		}

		dateID := d.Year()*10000 + int(d.Month())*100 + d.Day()
		lookup[o.OrderDate] = dateID

		if _, ok := seen[dateID]; ok {
			continue
		}

		// Monday-first weekday, 1..7.
		dow := int(d.Weekday())
		if dow == 0 {
			dow = 7
		}
		_, week := d.ISOWeek()

		seen[dateID] = model.DateDim{
			DateID:     dateID,
			FullDate:   d.Format(dateLayout),
			Day:        d.Day(),
			Month:      int(d.Month()),
			MonthName:  monthNames[d.Month()-1],
			Quarter:    (int(d.Month())-1)/3 + 1,
			Year:       d.Year(),
			WeekOfYear: week,
			DayOfWeek:  dayNames[dow-1],
			IsWeekend:  dow >= 6,
		}
	}

	rows := make([]model.DateDim, 0, len(seen))
	for _, r := range seen {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DateID < rows[j].DateID })

	return rows, lookup, nil
}
