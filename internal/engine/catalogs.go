// internal/engine/catalogs.go
package engine

import "regexp"

// The tables below are the engine's configuration data. They are built once at
// package init and never mutated; every scorer reads them concurrently without
// coordination. Order matters where noted (deterministic tie-breaking).

// categoryEntry maps one category to its keyword set. Declaration order is the
// output order of AnalyzeCategories.
type categoryEntry struct {
	Category Category
	Keywords []string
}

var categoryTable = []categoryEntry{
	{CategoryPayment, []string{"paiement", "payer", "payé", "prix", "tarif", "commission", "facture", "virement", "argent", "rémunération"}},
	{CategorySecurity, []string{"sécurité", "securite", "arnaque", "fraude", "confiance", "protection", "litige", "garantie"}},
	{CategoryProcess, []string{"commande", "livraison", "délai", "étape", "processus", "déroule", "fonctionne", "validation"}},
	{CategoryOnboarding, []string{"inscription", "inscrire", "compte", "créer", "profil", "débuter", "commencer", "démarrer"}},
	{CategorySupport, []string{"aide", "problème", "bug", "erreur", "support", "assistance", "contact", "joindre"}},
	{CategoryQuality, []string{"qualité", "avis", "note", "évaluation", "satisfait", "révision", "conforme"}},
}

// Direct persona declarations, checked before any keyword voting. First match
// wins.
type personaRule struct {
	re       *regexp.Regexp
	UserType UserType
}

var personaRules = []personaRule{
	{regexp.MustCompile(`je suis (un |une )?client`), UserTypeClient},
	{regexp.MustCompile(`je suis (un |une )?freelance`), UserTypeFreelance},
	{regexp.MustCompile(`je suis (un |une )?(prestataire|indépendant|independant|auto-entrepreneur)`), UserTypeFreelance},
	{regexp.MustCompile(`^client$`), UserTypeClient},
	{regexp.MustCompile(`^freelance$`), UserTypeFreelance},
	{regexp.MustCompile(`besoin.*(service|prestation|prestataire)`), UserTypeClient},
	{regexp.MustCompile(`cherche.*(mission|client)s?\b`), UserTypeFreelance},
	{regexp.MustCompile(`propose.*(service|prestation)s?\b`), UserTypeFreelance},
}

// Keyword vote lists for the persona fallback. One vote per keyword present,
// not per occurrence.
var clientKeywords = []string{
	"besoin", "cherche un", "acheter", "commander", "projet", "budget",
	"devis", "embaucher", "recruter", "déléguer", "confier",
}

var freelanceKeywords = []string{
	"mission", "portfolio", "facturer", "prestation", "compétences",
	"tarif", "vendre", "proposer", "profil", "visibilité", "prospection",
}

// intentDef is the declaration form of a specific intent; regexes are compiled
// into the runtime catalog at init.
type intentDef struct {
	Intent        Intent
	Keywords      []string
	Regexes       []string
	RequiredWords []string
}

var intentDefs = []intentDef{
	{
		Intent:   IntentCommandeInfo,
		Keywords: []string{"commande", "livraison", "statut", "suivi", "avancement"},
		Regexes: []string{
			`où en est (ma|la|cette) commande`,
			`(statut|suivi|avancement) de (ma|la) commande`,
			`ma commande (est|sera|arrive)`,
		},
	},
	{
		Intent:   IntentPaiementInfo,
		Keywords: []string{"paiement", "payé", "virement", "délai", "argent", "rémunéré"},
		Regexes: []string{
			`quand (vais-je|serai-je|suis-je) (être )?(payé|réglé|rémunéré)`,
			`(délai|date) (de|du) (paiement|virement)`,
			`paiement.*(quand|combien de temps)`,
		},
	},
	{
		Intent:   IntentProfilModification,
		Keywords: []string{"profil", "modifier", "photo", "description", "informations"},
		Regexes: []string{
			`(modifier|changer|mettre à jour) (mon|le|ma) (profil|photo|description)`,
			`comment (modifier|changer) mon profil`,
		},
	},
	{
		Intent:   IntentSupportTechnique,
		Keywords: []string{"bug", "erreur", "problème", "technique", "fonctionne", "marche", "bloqué"},
		Regexes: []string{
			`(bug|erreur|problème) (technique|sur le site|sur la plateforme)`,
			`(ça|ca|rien) ne (marche|fonctionne) (pas|plus)`,
			`je suis bloqué`,
		},
	},
	{
		Intent:   IntentConseilClients,
		Keywords: []string{"trouver", "clients", "conseil", "prospection", "visibilité", "missions"},
		Regexes: []string{
			`comment (trouver|avoir|obtenir|attirer) (des|plus de) (clients|missions)`,
			`(conseil|astuce)s? pour (trouver|décrocher)`,
		},
	},
	{
		Intent:   IntentCreationCompte,
		Keywords: []string{"créer", "compte", "inscription", "inscrire", "rejoindre"},
		Regexes: []string{
			`(créer|ouvrir) (un|mon) compte`,
			`comment (s'inscrire|m'inscrire|je m'inscris)`,
		},
	},
}

// Canned answers keyed by intent, used when a specific intent beats the
// knowledge base.
var intentResponses = map[Intent]string{
	IntentCommandeInfo:       "Vous pouvez suivre l'avancement de votre commande depuis votre tableau de bord, rubrique « Mes commandes ». Le freelance y publie chaque étape.",
	IntentPaiementInfo:       "Les paiements sont déclenchés à la validation de la commande et versés sous 3 à 5 jours ouvrés, commission déduite.",
	IntentProfilModification: "Rendez-vous dans « Mon profil » pour modifier votre photo, votre description et vos informations ; les changements sont publiés immédiatement.",
	IntentSupportTechnique:   "Désolé pour ce souci technique. Essayez d'abord de recharger la page ; si le problème persiste, contactez le support avec une capture d'écran.",
	IntentConseilClients:     "Pour trouver des clients : soignez votre profil, répondez vite aux demandes, et commencez par des prestations courtes pour accumuler des avis.",
	IntentCreationCompte:     "Créer un compte est gratuit : cliquez sur « S'inscrire », choisissez un profil client ou freelance, puis validez votre adresse e-mail.",
}

// Verbs that signal an intent is being expressed at all, worth a small bonus in
// the fallback scorer.
var genericIntentVerbs = []string{
	"veux", "voudrais", "souhaite", "besoin", "aide", "faut", "peux", "dois", "cherche",
}

// Interrogative openers; an utterance starting with one of these is structurally
// a question even without a question mark.
var interrogatives = []string{
	"comment", "pourquoi", "quand", "où", "qui", "que", "quel", "quelle",
	"quels", "quelles", "combien", "est-ce",
}

var groupCatalog = []IntentGroupProfile{
	{
		Group:      GroupServiceInquiry,
		Nouns:      []string{"service", "prestation", "offre", "catalogue", "freelance"},
		Verbs:      []string{"proposer", "offrir", "chercher", "trouver"},
		Topics:     []string{"service", "prestation", "mission"},
		Adjectives: []string{"disponible", "adapté", "spécialisé"},
		Phrases:    []string{"quels services", "que proposez-vous", "types de prestation"},
	},
	{
		Group:      GroupProcessQuestion,
		Nouns:      []string{"processus", "étape", "commande", "livraison", "validation"},
		Verbs:      []string{"fonctionner", "marcher", "dérouler", "passer"},
		Topics:     []string{"processus", "commande", "fonctionnement"},
		Adjectives: []string{"simple", "rapide", "long"},
		Phrases:    []string{"comment ça marche", "comment ça se passe", "comment fonctionne"},
	},
	{
		Group:      GroupPricingInquiry,
		Nouns:      []string{"prix", "tarif", "commission", "coût", "facture", "budget"},
		Verbs:      []string{"payer", "coûter", "facturer"},
		Topics:     []string{"prix", "paiement", "tarif"},
		Adjectives: []string{"cher", "gratuit", "abordable"},
		Phrases:    []string{"combien ça coûte", "quel est le prix", "quels sont les tarifs"},
	},
	{
		Group:      GroupComplaint,
		Nouns:      []string{"problème", "retard", "erreur", "litige", "réclamation"},
		Verbs:      []string{"plaindre", "réclamer", "rembourser", "annuler"},
		Topics:     []string{"problème", "litige", "réclamation"},
		Adjectives: []string{"inacceptable", "déçu", "mécontent", "insatisfait"},
		Phrases:    []string{"je ne suis pas content", "c'est inadmissible", "je veux un remboursement"},
	},
	{
		Group:      GroupSecurityConcern,
		Nouns:      []string{"sécurité", "arnaque", "fraude", "données", "confiance"},
		Verbs:      []string{"protéger", "sécuriser", "vérifier"},
		Topics:     []string{"sécurité", "protection", "confidentialité"},
		Adjectives: []string{"sûr", "fiable", "sécurisé"},
		Phrases:    []string{"est-ce sécurisé", "est-ce fiable", "protection des données"},
	},
	{
		Group:      GroupFeedback,
		Nouns:      []string{"avis", "retour", "suggestion", "expérience"},
		Verbs:      []string{"suggérer", "améliorer", "noter"},
		Topics:     []string{"avis", "amélioration"},
		Adjectives: []string{"satisfait", "content", "utile"},
		Phrases:    []string{"j'ai une suggestion", "mon avis", "petit retour"},
	},
}

// Canned answers keyed by group, used when the expanded aggregator ends up the
// best strategy of the turn.
var groupResponses = map[IntentGroup]string{
	GroupServiceInquiry:  "Notre plateforme met en relation clients et freelances sur des centaines de catégories de services. Parcourez le catalogue pour découvrir les prestations disponibles.",
	GroupProcessQuestion: "Le fonctionnement est simple : vous décrivez votre besoin, un freelance accepte la commande, livre le travail, puis vous validez la livraison.",
	GroupPricingInquiry:  "Chaque freelance fixe librement ses tarifs ; la plateforme prélève une commission de 10% sur chaque commande validée.",
	GroupComplaint:       "Je suis désolé que vous rencontriez ce problème. Pouvez-vous me donner plus de détails pour que je vous oriente vers la bonne solution ?",
	GroupSecurityConcern: "Vos paiements restent bloqués en séquestre jusqu'à validation de la livraison, et vos données sont chiffrées. La plateforme gère les litiges.",
	GroupFeedback:        "Merci pour votre retour, il est transmis à l'équipe. N'hésitez pas si vous avez d'autres remarques.",
}

// Runtime form of the specific-intent catalog, regexes compiled once.
type compiledIntent struct {
	IntentPattern
	regexes []*regexp.Regexp
}

var intentCatalog = buildIntentCatalog()

func buildIntentCatalog() []compiledIntent {
	out := make([]compiledIntent, 0, len(intentDefs))
	for _, def := range intentDefs {
		ci := compiledIntent{
			IntentPattern: IntentPattern{
				Intent:        def.Intent,
				Keywords:      def.Keywords,
				Regexes:       def.Regexes,
				RequiredWords: def.RequiredWords,
			},
		}
		for _, expr := range def.Regexes {
			ci.regexes = append(ci.regexes, regexp.MustCompile(expr))
		}
		out = append(out, ci)
	}
	return out
}
