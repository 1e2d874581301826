package transform

import (
	"errors"
	"reflect"
	"testing"

	"github.com/retaildw/retaildw/internal/model"
)

func ordersOn(dates ...string) []model.Order {
	orders := make([]model.Order, 0, len(dates))
	for i, d := range dates {
		orders = append(orders, model.Order{
			OrderID:    i + 1,
			CustomerID: 1,
			OrderDate:  d,
			Status:     "completed",
			Channel:    "online",
		})
	}
	return orders
}

func TestBuildDateDimEmpty(t *testing.T) {
	rows, lookup, err := BuildDateDim(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected 0 rows, got %d", len(rows))
	}
	if len(lookup) != 0 {
		t.Errorf("Expected empty lookup, got %d entries", len(lookup))
	}
}

func TestBuildDateDimAttributes(t *testing.T) {
	tests := []struct {
		date string
		want model.DateDim
	}{
		{
			// A Saturday in Q1.
			date: "2024-03-16",
			want: model.DateDim{
				DateID: 20240316, FullDate: "2024-03-16",
				Day: 16, Month: 3, MonthName: "March", Quarter: 1,
				Year: 2024, WeekOfYear: 11, DayOfWeek: "Saturday", IsWeekend: true,
			},
		},
		{
			// A Sunday in Q4.
			date: "2022-10-02",
			want: model.DateDim{
				DateID: 20221002, FullDate: "2022-10-02",
				Day: 2, Month: 10, MonthName: "October", Quarter: 4,
				Year: 2022, WeekOfYear: 39, DayOfWeek: "Sunday", IsWeekend: true,
			},
		},
		{
			// A Monday in Q3; ISO week of a mid-year date.
			date: "2023-07-03",
			want: model.DateDim{
				DateID: 20230703, FullDate: "2023-07-03",
				Day: 3, Month: 7, MonthName: "July", Quarter: 3,
				Year: 2023, WeekOfYear: 27, DayOfWeek: "Monday", IsWeekend: false,
			},
		},
		{
			// Jan 1 belonging to the previous ISO year's last week.
			date: "2023-01-01",
			want: model.DateDim{
				DateID: 20230101, FullDate: "2023-01-01",
				Day: 1, Month: 1, MonthName: "January", Quarter: 1,
				Year: 2023, WeekOfYear: 52, DayOfWeek: "Sunday", IsWeekend: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			rows, lookup, err := BuildDateDim(ordersOn(tt.date))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("Expected 1 row, got %d", len(rows))
			}
			if !reflect.DeepEqual(rows[0], tt.want) {
				t.Errorf("Row mismatch:\n got  %+v\n want %+v", rows[0], tt.want)
			}
			if lookup[tt.date] != tt.want.DateID {
				t.Errorf("Lookup[%s] = %d, want %d", tt.date, lookup[tt.date], tt.want.DateID)
			}
		})
	}
}

func TestBuildDateDimDistinctDates(t *testing.T) {
	orders := ordersOn("2023-05-01", "2023-05-02", "2023-05-01", "2023-05-02", "2023-05-01")

	rows, lookup, err := BuildDateDim(orders)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected 2 rows for 2 distinct dates, got %d", len(rows))
	}
	if len(lookup) != 2 {
		t.Errorf("Expected 2 lookup entries, got %d", len(lookup))
	}
}

func TestBuildDateDimDeterministic(t *testing.T) {
	orders := ordersOn("2024-02-29", "2022-01-01", "2023-12-31", "2022-01-01", "2023-06-15")

	first, firstLookup, err := BuildDateDim(orders)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, secondLookup, err := BuildDateDim(orders)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Two runs over the same orders produced different rows")
	}
	if !reflect.DeepEqual(firstLookup, secondLookup) {
		t.Error("Two runs over the same orders produced different lookups")
	}
}

func TestBuildDateDimCalendarOrder(t *testing.T) {
	orders := ordersOn("2024-02-29", "2022-01-01", "2023-12-31", "2023-06-15")

	rows, _, err := BuildDateDim(orders)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i-1].DateID >= rows[i].DateID {
			t.Errorf("date_id not strictly increasing: %d then %d",
				rows[i-1].DateID, rows[i].DateID)
		}
		if rows[i-1].FullDate >= rows[i].FullDate {
			t.Errorf("date_id order disagrees with calendar order at %q/%q",
				rows[i-1].FullDate, rows[i].FullDate)
		}
	}
}

func TestBuildDateDimMalformedDate(t *testing.T) {
	tests := []string{"not-a-date", "2023/05/01", "2023-13-01", ""}

	for _, date := range tests {
		t.Run(date, func(t *testing.T) {
			_, _, err := BuildDateDim(ordersOn(date))
			if err == nil {
				t.Fatal("Expected error for malformed date")
			}
			var dtErr *model.DataTypeError
			if !errors.As(err, &dtErr) {
				t.Fatalf("Expected DataTypeError, got %T: %v", err, err)
			}
			if dtErr.Set != "orders" || dtErr.Field != "order_date" {
				t.Errorf("Error names %s/%s, want orders/order_date", dtErr.Set, dtErr.Field)
			}
		})
	}
}
