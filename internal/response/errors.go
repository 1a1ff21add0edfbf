package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials  ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired       ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid        ErrCode = "TOKEN_INVALID"
	ErrAccountNotActivated ErrCode = "ACCOUNT_NOT_ACTIVATED"
	ErrAccountGone         ErrCode = "ACCOUNT_GONE"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrEmailTaken       ErrCode = "EMAIL_TAKEN"
	ErrCategoryTaken    ErrCode = "CATEGORY_TAKEN"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Accounts ──────────────────────────────────────────────────────
	ErrAlreadyActive ErrCode = "ALREADY_ACTIVE"

	// ─── Catalog ───────────────────────────────────────────────────────
	ErrFormationNotFound     ErrCode = "FORMATION_NOT_FOUND"
	ErrFormationNotPublished ErrCode = "FORMATION_NOT_PUBLISHED"
	ErrNotFormationOwner     ErrCode = "NOT_FORMATION_OWNER"

	// ─── Cart / checkout ───────────────────────────────────────────────
	ErrCartNotFound    ErrCode = "CART_NOT_FOUND"
	ErrCartItemMissing ErrCode = "ITEM_NOT_FOUND"
	ErrCartAlreadyPaid ErrCode = "CART_ALREADY_PAID"
	ErrCartEmpty       ErrCode = "CART_EMPTY"

	// ─── Quiz ──────────────────────────────────────────────────────────
	ErrInvalidAnswerSet ErrCode = "INVALID_ANSWER_SET"
	ErrNoQuestions      ErrCode = "NONE_FOUND"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
// The product is French-speaking, so user-facing copy is French; clients
// should branch on the stable code, never on the message.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "E-mail ou mot de passe incorrect."
	case ErrTokenRequired:
		return "Un jeton d'authentification est requis."
	case ErrTokenInvalid:
		return "Le jeton d'authentification est invalide ou expiré."
	case ErrAccountNotActivated:
		return "Votre compte n'a pas encore été activé par un administrateur."
	case ErrAccountGone:
		return "Ce compte n'existe plus."
	case ErrForbidden:
		return "Vous n'avez pas accès à cette ressource."
	case ErrValidation:
		return "La validation a échoué. Veuillez vérifier votre saisie."
	case ErrInvalidID:
		return "Le format de l'identifiant est invalide."
	case ErrInvalidPayload:
		return "Le corps de la requête est invalide."
	case ErrNotFound:
		return "Ressource introuvable."
	case ErrEmailTaken:
		return "Un compte existe déjà avec cette adresse e-mail."
	case ErrCategoryTaken:
		return "Une catégorie porte déjà ce nom."
	case ErrDependencyExists:
		return "Suppression impossible : des données en dépendent encore."
	case ErrAlreadyActive:
		return "Ce compte formateur est déjà activé."
	case ErrFormationNotFound:
		return "Formation introuvable."
	case ErrFormationNotPublished:
		return "Cette formation n'est pas encore publiée."
	case ErrNotFormationOwner:
		return "Vous n'êtes pas l'auteur de cette formation."
	case ErrCartNotFound:
		return "Panier introuvable."
	case ErrCartItemMissing:
		return "Cette formation n'est pas dans votre panier."
	case ErrCartAlreadyPaid:
		return "Ce panier a déjà été payé."
	case ErrCartEmpty:
		return "Votre panier est vide."
	case ErrInvalidAnswerSet:
		return "Une question doit comporter exactement 4 réponses dont une seule correcte."
	case ErrNoQuestions:
		return "Aucune question trouvée pour cette catégorie."
	case ErrFileRequired:
		return "Un fichier est requis."
	case ErrUnsupportedFile:
		return "Type de fichier non pris en charge."
	case ErrFileTooLarge:
		return "Le fichier dépasse la taille autorisée."
	case ErrRateLimitExceeded:
		return "Trop de requêtes. Veuillez réessayer plus tard."
	case ErrInternal:
		return "Une erreur interne est survenue."
	default:
		return "Une erreur inattendue est survenue."
	}
}
