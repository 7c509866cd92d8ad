package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/checklist.html
var templatesFS embed.FS

const ChecklistSubject = "🎉 Votre Offre du Voyageur Malin - Abidjan"

var checklistSteps = []ChecklistStep{
	{
		Title: "🎯 Étape 1 : Définir votre stratégie (10 minutes)",
		Items: []string{
			"Budget maximal par nuit : _____ FCFA",
			"Mes 3 impératifs : sécurité, cuisine, calme",
			"Mes 3 envies : jardin, proximité, immersion locale",
			"Durée du séjour : _____ jours",
		},
	},
	{
		Title: "🔍 Étape 2 : Recherche stratégique (30 minutes)",
		Items: []string{
			"Ouvrir Airbnb et filtrer par \"chambre privée\"",
			"Rechercher \"Abidjan, Cocody Angré\" comme destination",
			"Vérifier l'accès complet aux espaces communs",
			"Comparer avec les tarifs d'hôtels équivalents",
			"Lire attentivement les 5 derniers avis",
		},
	},
	{
		Title: "🏠 Étape 3 : Critères de sélection incontournables",
		Items: []string{
			"Cuisine entièrement équipée et accessible 24h/24",
			"Salon spacieux avec espace de travail",
			"Gardien ou système de sécurité permanent",
			"Service de ménage inclus (fréquence à vérifier)",
			"Quartier sécurisé (Cocody Angré recommandé)",
			"Wi-Fi haut débit inclus",
		},
	},
	{
		Title: "💬 Étape 4 : Questions à poser avant de réserver",
		Items: []string{
			"Puis-je recevoir des invités dans les espaces communs ?",
			"Y a-t-il des frais cachés (électricité, eau, ménage) ?",
			"Quelle est la politique d'annulation ?",
			"Les transports publics sont-ils accessibles ?",
			"Y a-t-il un supermarché à proximité ?",
		},
	},
	{
		Title: "🛡️ Étape 5 : Sécuriser votre réservation",
		Items: []string{
			"Vérifier l'identité du propriétaire (profil vérifié)",
			"Demander des photos récentes des espaces",
			"Confirmer les modalités d'arrivée et de départ",
			"Sauvegarder les contacts d'urgence",
			"Prendre une assurance voyage si nécessaire",
		},
	},
}

// Renderer builds the checklist email. The template is parsed once.
type Renderer struct {
	tmpl     *template.Template
	from     string
	offerURL string
	now      func() time.Time
}

func NewRenderer(from, offerURL string) (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/checklist.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing checklist template: %w", err)
	}
	return &Renderer{tmpl: t, from: from, offerURL: offerURL, now: time.Now}, nil
}

func (r *Renderer) Render(to, firstName string) (Message, error) {
	data := ChecklistEmailData{
		FirstName: firstName,
		OfferURL:  r.offerURL,
		Year:      r.now().Year(),
		Steps:     checklistSteps,
	}

	var body bytes.Buffer
	if err := r.tmpl.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("error rendering checklist template: %w", err)
	}

	return Message{
		From:    r.from,
		To:      to,
		Subject: ChecklistSubject,
		HTML:    body.String(),
	}, nil
}
