// Package knowledge holds the fixed BNDE corpus the assistant is allowed to
// answer from, the refusal message, and the keyword list used for gating.
package knowledge

// Refusal is returned verbatim whenever a question falls outside the BNDE domain.
const Refusal = "Désolé je suis un assistant virtuel de la BNDE, ma connaissance se limite aux produits et services de la BNDE"

// AssistantName is the persona shown to users and used in prompts.
const AssistantName = "Leuk"

// KnowledgeBase is the immutable grounding context sent with every in-domain question.
type KnowledgeBase struct {
	Text    string
	Refusal string
}

// Default returns the built-in BNDE knowledge base.
func Default() KnowledgeBase {
	return KnowledgeBase{
		Text:    bndeKnowledge,
		Refusal: Refusal,
	}
}

var defaultKeywords = []string{
	"bnde", "banque", "compte", "épargne", "courant", "ouvrir", "ouverture",
	"document", "pièce", "frais", "taux", "package", "nafio", "terru",
	"particulier", "entreprise", "service", "produit", "carte", "crédit",
}

var frequentQuestions = []string{
	"Qui est la BNDE ?",
	"Quel est le taux d'épargne ?",
	"Quels documents pour un compte ?",
}

// DefaultKeywords returns a copy of the lowercase keyword list that marks
// a question as in-domain.
func DefaultKeywords() []string {
	return append([]string(nil), defaultKeywords...)
}

// FrequentQuestions returns a copy of the canned questions offered as shortcuts.
func FrequentQuestions() []string {
	return append([]string(nil), frequentQuestions...)
}

// About describes what the assistant covers.
const About = `Assistant BNDE

Je réponds uniquement aux questions sur :
- Les comptes bancaires (courant, épargne)
- Les documents requis
- Les packages (NAFIO, TERRU)
- Les tarifs et conditions

Pour toute autre question supplémentaire, contactez directement la banque.`

const bndeKnowledge = `
PRÉSENTATION DE LA BNDE

La Banque Nationale pour le Développement Économique (BNDE) a démarré ses activités en janvier 2014. C'est une banque à vocation universelle dédiée particulièrement aux PME-PMI, fonctionnant selon un modèle de partenariat Public-Privé.

Mission de la BNDE : Contribuer à créer et développer des entreprises sénégalaises en offrant des produits et services diversifiés et adaptés, avec une attention particulière sur les PME-PMI.

Objectifs spécifiques :
- Accompagner la croissance des PME-PMI (création, restructuration, expansion)
- Contribuer au développement économique et social du Sénégal
- Financer les besoins des acteurs économiques au-delà des PME
- Financer le secteur productif moderne et le secteur informel à forte valeur ajoutée

PRODUITS ET SERVICES BNDE :
- COMPTES BANCAIRES
- PACKAGES
- MONÉTIQUE
- BANQUE DIGITALE
- PLACEMENT ET ÉPARGNE
- FINANCEMENT
- BANCASSURANCE

COMPTE COURANT
- Définition : Compte de dépôt à vue pour opérations bancaires courantes
- Clientèle : Particuliers, Entreprises, Professionnels
- Frais : 2 925 FCFA TTC

COMPTE ÉPARGNE
- Pour : Personnes physiques de 30 ans et plus
- Taux : 3,5% l'an (net d'impôts)
- Solde max rémunéré : 6 000 000 FCFA
- Frais : Gratuit

DOCUMENTS - COMPTE COURANT PARTICULIERS :
- Photocopie CNI ou passeport
- 2 photos d'identité
- Certificat de résidence OU quittance eau/électricité/téléphone

DOCUMENTS - COMPTE COURANT ENTREPRISE :
- Certificat inscription registre de commerce
- Carte d'identité
- Certificat de résidence OU quittance
- 2 photos
- Certificat immatriculation fichier contribuables

DOCUMENTS - COMPTE COURANT SARL :
- Certificat inscription registre de commerce
- Certificat immatriculation contribuables
- Annonces légales
- Pouvoirs personnes habilitées
- Cartes identité et photos
- Certificat résidence OU quittance
- Dernier bilan (facultatif)

DOCUMENTS - COMPTE ÉPARGNE :
- 3 photos d'identité
- Certificat domicile OU quittance
- Photocopie CNI ou passeport

PACKAGES PARTICULIERS (NAFIO) : Ganalé, Kilifa, Wurus
PACKAGES ENTREPRISES (TERRU) : DOOLEL, YAATAL, NDARIN, AND JAPPO
`
