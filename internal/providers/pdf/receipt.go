package pdf

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type MarotoProvider struct{}

func NewProvider() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) GenerateReceipt(ctx context.Context, doc ReceiptDocument) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	primary := parseColor(doc.PrimaryColor)
	secondary := parseColor(doc.SecondaryColor)

	m.AddRow(20,
		text.NewCol(12, doc.Organization, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
			Color: primary,
		}),
	)
	if doc.Address != "" {
		m.AddRow(8,
			text.NewCol(12, doc.Address, props.Text{Size: 9, Align: align.Center}),
		)
	}
	m.AddRow(12,
		text.NewCol(12, doc.Purpose, props.Text{
			Size:  11,
			Style: fontstyle.Italic,
			Align: align.Center,
			Color: secondary,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Receipt No: "+doc.ReceiptID, props.Text{Size: 10, Style: fontstyle.Bold}),
			text.New("Date: "+doc.Date, props.Text{Size: 10, Top: 6}),
		),
		col.New(6).Add(
			text.New("Payment type: "+doc.PaymentType, props.Text{Size: 10, Align: align.Right}),
			text.New("Issued by: "+doc.IssuedBy, props.Text{Size: 10, Top: 6, Align: align.Right}),
		),
	)

	m.AddRow(20,
		col.New(12).Add(
			text.New("Received from", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(doc.DonorName, props.Text{Size: 12, Top: 5}),
			text.New(doc.ContactInfo, props.Text{Size: 9, Top: 11}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, "Amount: "+doc.Amount, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Top:   3,
			Color: primary,
		}),
	)

	m.AddRow(12,
		text.NewCol(12, doc.Description, props.Text{Size: 9, Top: 2}),
	)

	if len(doc.Signatories) > 0 {
		width := 12 / len(doc.Signatories)
		if width < 3 {
			width = 3
		}
		signCols := make([]core.Col, 0, len(doc.Signatories))
		for _, sig := range doc.Signatories {
			signCols = append(signCols, col.New(width).Add(
				text.New(sig.Name, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Center}),
				text.New(sig.Title, props.Text{Size: 8, Top: 6, Align: align.Center}),
			))
		}
		m.AddRow(25, signCols...)
	}

	if doc.Payload != "" {
		m.AddRow(10,
			text.NewCol(12, doc.Payload, props.Text{Size: 6, Align: align.Center}),
		)
	}

	rendered, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(rendered.GetBytes()), nil
}

// parseColor converts "#RRGGBB" to a maroto color. Unparseable values fall
// back to black.
func parseColor(hex string) *props.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return &props.Color{}
	}
	r, err1 := strconv.ParseUint(hex[0:2], 16, 16)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 16)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 16)
	if err1 != nil || err2 != nil || err3 != nil {
		return &props.Color{}
	}
	return &props.Color{Red: int(r), Green: int(g), Blue: int(b)}
}
