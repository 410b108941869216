package contact

// Schema returns the JSON schema a stored contact document must satisfy.
func Schema() map[string]any {
	name := map[string]any{"type": "string", "pattern": NamePattern}
	number := map[string]any{"type": "string", "pattern": NumberPattern}
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   "contact",
		"type":    "object",
		"properties": map[string]any{
			string(FirstName):      name,
			string(LastName):       name,
			string(Patronymic):     name,
			string(Organization):   map[string]any{"type": "string", "minLength": 1},
			string(OfficeNumber):   number,
			string(PersonalNumber): number,
		},
		"required": []string{
			string(FirstName), string(LastName), string(Patronymic),
			string(Organization), string(OfficeNumber), string(PersonalNumber),
		},
		"additionalProperties": false,
	}
}

// FieldSchema returns a schema checking only the fields present in a partial
// document. Used to re-validate updates.
func FieldSchema(fields []Field) map[string]any {
	full := Schema()["properties"].(map[string]any)
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[string(f)] = full[string(f)]
	}
	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}
