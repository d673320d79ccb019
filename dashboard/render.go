package dashboard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-isatty"

	"posadmin/models"
)

const barWidth = 30

// Renderer draws dashboard frames to a writer.
type Renderer struct {
	w     io.Writer
	clear bool
	now   func() time.Time
}

// NewRenderer returns a Renderer for w. When w is a terminal each frame
// replaces the previous one.
func NewRenderer(w io.Writer) *Renderer {
	r := &Renderer{w: w, now: time.Now}
	if f, ok := w.(*os.File); ok {
		r.clear = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

// Frame draws one frame for the given state and snapshot.
func (r *Renderer) Frame(state State, snap *models.DashboardSnapshot) error {
	if r.clear {
		fmt.Fprint(r.w, "\033[H\033[2J")
	}
	if snap == nil {
		if state == Loading {
			_, err := fmt.Fprintln(r.w, "Loading dashboard...")
			return err
		}
		_, err := fmt.Fprintln(r.w, "Failed to load dashboard data\nPlease refresh or check your connection")
		return err
	}
	return Render(r.w, snap, r.now())
}

// Render writes a text rendering of snap.
func Render(w io.Writer, snap *models.DashboardSnapshot, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	s := snap.Stats

	arrow, pct := SalesTrend(s.SalesChange)
	ordersNote := "No orders"
	if len(snap.OrderBreakdown) > 0 {
		ordersNote = "Orders today"
	}

	fmt.Fprintf(tw, "Today's Sales\t%s\t%s %g%%\n", FormatCurrency(s.TodaySales), arrow, pct)
	fmt.Fprintf(tw, "Total Orders\t%d\t%s\n", s.TotalOrders, ordersNote)
	fmt.Fprintf(tw, "Avg Order Value\t%s\t\n", FormatCurrency(s.AvgOrderValue))
	fmt.Fprintf(tw, "Net Profit\t%s\t\n", FormatCurrency(s.NetProfit))
	fmt.Fprintf(tw, "Active Orders\t%d\t\n", s.ActiveOrders)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Sales (last 7 days)")
	scale := MaxChartValue(snap.SalesChart)
	for _, p := range snap.SalesChart {
		n := int(BarFraction(p.Total, scale)*barWidth + 0.5)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", FormatChartDate(p.Day), strings.Repeat("█", n), FormatCurrency(p.Total))
	}
	if latest, ok := LatestChartPoint(snap.SalesChart); ok {
		fmt.Fprintf(tw, "Latest\t%s\t%s\n", FormatChartDate(latest.Day), FormatCurrency(latest.Total))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Order Types")
	for _, b := range snap.OrderBreakdown {
		fmt.Fprintf(tw, "%s\t%g%%\t%d orders\t%s\n", b.Type, b.Percentage, b.Count, FormatCurrency(b.Total))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Top Items")
	for i, it := range snap.TopItems {
		fmt.Fprintf(tw, "#%d\t%s\t%d sold\t%s\n", i+1, it.Name, it.Qty, FormatCurrency(it.Revenue))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Recent Orders")
	for _, o := range snap.RecentOrders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.PaymentMethod, FormatCurrency(o.Total), FormatTime(o.CreatedAt), OrderAge(o.CreatedAt, now))
	}
	if !snap.FetchedAt.IsZero() {
		fmt.Fprintf(tw, "\nUpdated %s\n", FormatTime(snap.FetchedAt))
	}

	return tw.Flush()
}
