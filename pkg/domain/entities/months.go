package entities

// MonthsPerYear is the length of every monthly vector in the planning model.
const MonthsPerYear = 12

// MonthLabels are the fiscal-year month labels, April first.
var MonthLabels = [MonthsPerYear]string{
	"Apr", "May", "Jun", "Jul", "Aug", "Sep",
	"Oct", "Nov", "Dec", "Jan", "Feb", "Mar",
}
