// cmd/ordermailer/main.go
//
// One-shot job: finds placed orders that have not been emailed yet, sends the
// confirmation through SendGrid, and marks them notified. Safe to run on a
// schedule; a failed send leaves the order unnotified for the next pass.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	outfs "leafline/internal/adapters/out/firestore"
	"leafline/internal/adapters/out/mail"
	orderdom "leafline/internal/domain/order"
	shared "leafline/internal/platform/di/shared"
)

const batchSize = 50

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	infra, err := shared.NewInfra(ctx)
	if err != nil {
		log.Fatalf("[ordermailer] infra init failed: %v", err)
	}
	defer infra.Close()

	if infra.SendGridAPIKey == "" {
		log.Fatalf("[ordermailer] no SendGrid key (set SENDGRID_API_KEY or SENDGRID_SECRET_NAME)")
	}

	repo := outfs.NewOrderRepositoryFS(infra.Firestore)
	sender := mail.NewSendGridClient(infra.SendGridAPIKey, infra.Config.SendGridFromEmail, "Leafline")

	orders, err := repo.ListUnnotified(ctx, batchSize)
	if err != nil {
		log.Fatalf("[ordermailer] list unnotified failed: %v", err)
	}
	if len(orders) == 0 {
		log.Printf("[ordermailer] nothing to send")
		return
	}

	sent, failed := 0, 0
	for i := range orders {
		o := &orders[i]
		to := strings.TrimSpace(o.Contact.Email)
		if to == "" {
			// no address to write to; mark it so the job does not spin on it
			log.Printf("[ordermailer] order %s has no contact email, marking notified", o.ID)
			if err := repo.MarkNotified(ctx, o.ID); err != nil {
				log.Printf("[ordermailer] mark notified failed orderId=%s err=%v", o.ID, err)
			}
			continue
		}

		if err := sender.Send(ctx, to, subjectFor(o), bodyFor(o)); err != nil {
			log.Printf("[ordermailer] send failed orderId=%s err=%v", o.ID, err)
			failed++
			continue
		}
		if err := repo.MarkNotified(ctx, o.ID); err != nil {
			// the mail went out; a duplicate on the next run is acceptable
			log.Printf("[ordermailer] mark notified failed orderId=%s err=%v", o.ID, err)
		}
		sent++
	}

	log.Printf("[ordermailer] done sent=%d failed=%d", sent, failed)
}

func subjectFor(o *orderdom.Order) string {
	short := o.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("Leafline order #%s confirmed", short)
}

func bodyFor(o *orderdom.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order! Here is what we have:\n\n", o.Contact.Name)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %dx %s (%s) - %s\n", it.Quantity, it.Name, it.Variant.Name, dollars(it.PriceCents*int64(it.Quantity)))
	}
	fmt.Fprintf(&b, "\nSubtotal:     %s\n", dollars(o.SubtotalCents))
	fmt.Fprintf(&b, "Tax:          %s\n", dollars(o.TaxCents))
	fmt.Fprintf(&b, "Delivery fee: %s\n", dollars(o.DeliveryFeeCents))
	fmt.Fprintf(&b, "Total:        %s\n\n", dollars(o.TotalCents))
	fmt.Fprintf(&b, "Delivery to: %s\n", o.Contact.Address)
	fmt.Fprintf(&b, "\nWe'll let you know when your order is out for delivery.\n\n- Leafline\n")

	return b.String()
}

func dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
