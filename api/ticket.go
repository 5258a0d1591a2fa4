package api

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/Domenick1991/tripflow/internal/metrics"
	"github.com/Domenick1991/tripflow/internal/ticket"
	"github.com/gin-gonic/gin"
)

// TicketHandler renders shareable ticket links. It decodes the payload from
// the URL and nothing else: no session, no ledger lookup, so a link keeps
// working after logout and after the booking is cancelled.
type TicketHandler struct{}

func NewTicketHandler() *TicketHandler {
	return &TicketHandler{}
}

func (h *TicketHandler) Register(router *gin.Engine) {
	router.GET("/ticket", h.show)
}

func (h *TicketHandler) show(c *gin.Context) {
	payload, err := ticket.Decode(c.Query("d"))
	if err != nil {
		var decodeErr *ticket.DecodeError
		if errors.As(err, &decodeErr) {
			metrics.TicketDecodes.WithLabelValues("invalid").Inc()
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(http.StatusBadRequest, invalidTicketPage)
			return
		}
		writeError(c, err)
		return
	}

	metrics.TicketDecodes.WithLabelValues("ok").Inc()
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := ticketPage.Execute(c.Writer, payload); err != nil {
		_ = c.Error(err)
	}
}

const invalidTicketPage = `<!DOCTYPE html>
<html>
<head><title>Invalid ticket</title></head>
<body>
	<h1>This ticket link is not valid</h1>
	<p>The link is incomplete or damaged. Please use the original link from your booking confirmation.</p>
</body>
</html>`

var ticketPage = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<head><title>{{if eq .Type "flight"}}Boarding Pass{{else}}Trip Voucher{{end}} {{.BookingID}}</title></head>
<body>
	<h1>{{if eq .Type "flight"}}Boarding Pass{{else}}Trip Voucher{{end}}</h1>
	<p>Booking <strong>{{.BookingID}}</strong> for {{.Name}} ({{.Email}})</p>
	<p>Travel date: {{.TravelDate}} &middot; Travelers: {{.Quantity}}</p>
{{if eq .Type "flight"}}
	<h2>{{.FromCity}} ({{.FromCode}}) &rarr; {{.ToCity}} ({{.ToCode}})</h2>
	<p>Flight {{.FlightNo}} &middot; {{.CabinClass}} &middot; departs {{.DepartTime}}, arrives {{.ArriveTime}}</p>
	{{if .Gate}}<p>Gate {{.Gate}}, Terminal {{.Terminal}}, boarding {{.BoardingTime}}</p>{{end}}
	{{if .Seats}}<p>Seats: {{range $i, $s := .Seats}}{{if $i}}, {{end}}{{$s}}{{end}}</p>{{end}}
{{else}}
	<h2>{{.Destination}}, {{.Country}}</h2>
	<p>{{.DurationDays}} days</p>
	{{if .Included}}<ul>{{range .Included}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{end}}
	<table>
		<tr><td>Subtotal</td><td>${{printf "%.2f" .Subtotal}}</td></tr>
		<tr><td>Tax</td><td>${{printf "%.2f" .Tax}}</td></tr>
		<tr><td><strong>Total</strong></td><td><strong>${{printf "%.2f" .Total}}</strong></td></tr>
	</table>
	<p><small>Issued {{.IssuedAt}}</small></p>
</body>
</html>`))
