// internal/knowledge/default.go
package knowledge

import "chatbot-workers/internal/engine"

// Default returns the compiled-in knowledge base, used when neither the
// database nor a file copy is available. Order matters: ties in the matcher
// keep the earliest entry.
func Default() []engine.KnowledgeEntry {
	return []engine.KnowledgeEntry{
		{
			Keywords: []string{"commission", "prix", "tarif", "coût"},
			Category: engine.CategoryPayment,
			Response: "Chaque freelance fixe librement ses tarifs. La plateforme prélève une commission de 10% sur chaque commande validée.",
		},
		{
			Keywords: []string{"paiement", "payé", "virement", "rémunération"},
			Category: engine.CategoryPayment,
			Response: "Les paiements sont sécurisés : le montant est bloqué à la commande et versé au freelance 3 à 5 jours après validation de la livraison.",
		},
		{
			Keywords: []string{"remboursement", "rembourser", "annuler", "annulation"},
			Category: engine.CategoryPayment,
			Response: "Une commande non livrée ou non conforme peut être annulée et remboursée intégralement depuis la page de la commande.",
		},
		{
			Keywords: []string{"litige", "désaccord", "conflit", "réclamation"},
			Category: engine.CategorySecurity,
			Response: "En cas de litige, ouvrez un dossier depuis la commande concernée : notre équipe de médiation tranche sous 72 heures.",
		},
		{
			Keywords: []string{"arnaque", "fraude", "sécurité", "confiance", "protection"},
			Category: engine.CategorySecurity,
			Response: "Vos paiements restent en séquestre jusqu'à validation de la livraison et ne transitent jamais directement entre membres. Signalez tout comportement suspect au support.",
		},
		{
			Keywords: []string{"commande", "livraison", "délai", "étape"},
			Category: engine.CategoryProcess,
			Response: "Après validation du devis, le freelance livre le travail dans le délai convenu ; vous disposez ensuite de 8 jours pour valider ou demander une révision.",
		},
		{
			Keywords: []string{"inscription", "inscrire", "compte", "créer", "rejoindre"},
			Category: engine.CategoryOnboarding,
			Response: "L'inscription est gratuite : choisissez un profil client ou freelance, validez votre e-mail, et complétez votre profil pour commencer.",
		},
		{
			Keywords: []string{"profil", "photo", "description", "portfolio"},
			Category: engine.CategoryOnboarding,
			Response: "Un profil complet (photo, description, portfolio) est publié immédiatement et augmente nettement vos chances d'être contacté.",
		},
		{
			Keywords: []string{"support", "contact", "joindre", "assistance", "aide"},
			Category: engine.CategorySupport,
			Response: "Le support est joignable 7j/7 depuis le formulaire de contact ; le délai de réponse moyen est inférieur à 4 heures ouvrées.",
		},
		{
			Keywords: []string{"avis", "note", "évaluation", "étoiles"},
			Category: engine.CategoryQuality,
			Response: "Après chaque commande validée, le client laisse une note et un avis publics ; ils sont définitifs et ne peuvent pas être achetés ou supprimés.",
		},
	}
}
