// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package vars

import (
	"facturio/internal/models"
)

// BuildBag assembles the runtime variable bag from live domain data. Nil
// inputs simply leave their section out, so a preview can run with only a
// sample bag and an unresolved section stays visible as literal tokens.
func BuildBag(company *models.CompanySettings, client *models.Client, inv *models.Invoice, items []models.InvoiceItem) Bag {
	bag := Bag{}

	if company != nil {
		bag["company"] = map[string]any{
			"name":     company.Name,
			"logo":     company.Logo,
			"address":  company.Address,
			"city":     company.City,
			"country":  company.Country,
			"email":    company.Email,
			"phone":    company.Phone,
			"siret":    company.Siret,
			"vat":      company.VAT,
			"currency": company.Currency,
		}
	}

	if client != nil {
		c := map[string]any{
			"name":    client.Name,
			"address": client.Address,
			"city":    client.City,
			"country": client.Country,
			"email":   client.Email,
		}
		if client.Company != nil {
			c["company"] = *client.Company
		}
		bag["client"] = c
	}

	if inv != nil {
		bag["invoice"] = map[string]any{
			"number":   inv.Number,
			"status":   string(inv.Status),
			"date":     inv.Date,
			"dueDate":  inv.DueDate,
			"subtotal": inv.Subtotal,
			"tax":      inv.Tax,
			"taxRate":  inv.TaxRate,
			"shipping": inv.Shipping,
			"total":    inv.Total,
		}
	}

	if items != nil {
		list := make([]map[string]any, 0, len(items))
		for _, item := range items {
			row := map[string]any{
				"description": item.Description,
				"quantity":    item.Quantity,
				"unitPrice":   item.UnitPrice,
				"discount":    item.Discount,
				"taxRate":     item.TaxRate,
				"taxAmount":   item.TaxAmount,
				"total":       item.Total,
				"totalTTC":    item.TotalTTC,
			}
			if item.Category != nil {
				row["category"] = *item.Category
			}
			if item.Reference != nil {
				row["reference"] = *item.Reference
			}
			list = append(list, row)
		}
		bag["items"] = list
	}

	return bag
}

// SampleBag returns the fixture bag used for template previews when no
// live invoice is bound.
func SampleBag() Bag {
	return Bag{
		"company": map[string]any{
			"name":    "Atelier Dupont",
			"logo":    "",
			"address": "12 rue des Lilas",
			"city":    "Lyon",
			"country": "France",
			"email":   "contact@atelier-dupont.fr",
			"phone":   "+33 4 78 00 00 00",
			"siret":   "123 456 789 00010",
			"vat":     "FR 32 123456789",
		},
		"client": map[string]any{
			"name":    "Marie Martin",
			"company": "Martin & Fils",
			"address": "8 avenue de la République",
			"city":    "Paris",
			"country": "France",
			"email":   "marie@martin-fils.fr",
		},
		"invoice": map[string]any{
			"number":   "FAC-2026-0042",
			"status":   "sent",
			"date":     "2026-08-01",
			"dueDate":  "2026-08-31",
			"subtotal": 1500.0,
			"tax":      300.0,
			"taxRate":  20.0,
			"shipping": 25.0,
			"total":    1800.0,
		},
		"project": map[string]any{
			"name":        "Refonte du site",
			"description": "Refonte complète du site vitrine",
		},
		"items": []map[string]any{
			{
				"description": "Conception graphique",
				"quantity":    2.0, "unitPrice": 450.0,
				"total": 900.0, "taxRate": 20.0, "taxAmount": 180.0, "totalTTC": 1080.0,
			},
			{
				"description": "Intégration",
				"quantity":    3.0, "unitPrice": 200.0,
				"total": 600.0, "taxRate": 20.0, "taxAmount": 120.0, "totalTTC": 720.0,
			},
		},
	}
}
