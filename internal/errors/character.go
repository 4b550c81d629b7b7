package errors

// Metadata keys attached by the character constructors
const (
	MetaCharacterID = "character_id"
	MetaFaction     = "faction"
	MetaAmount      = "amount"
)

// CharacterNotFound reports a lookup for an ID that is not stored
func CharacterNotFound(characterID string) *Error {
	return NotFoundf("character with ID '%s' not found", characterID).
		WithMeta(MetaCharacterID, characterID)
}

// CharacterAlreadyExists reports a create for an ID that is already stored
func CharacterAlreadyExists(characterID string) *Error {
	return AlreadyExistsf("character with ID '%s' already exists", characterID).
		WithMeta(MetaCharacterID, characterID)
}

func CharacterIDRequired() *Error {
	return InvalidArgument("character ID is required")
}

func FactionRequired() *Error {
	return InvalidArgument("faction is required")
}

// NegativeAmount rejects a damage or heal amount below zero. The combat core
// accepts any int; only callers going through the services are held to this.
func NegativeAmount(amount int) *Error {
	return InvalidArgumentf("amount cannot be negative, got %d", amount).
		WithMeta(MetaAmount, amount)
}

// CharacterID returns the character ID recorded anywhere in the chain, or ""
func CharacterID(err error) string {
	id, ok := GetMeta(err)[MetaCharacterID].(string)
	if !ok {
		return ""
	}
	return id
}
