package model

// GenerateRequest represents a password generation request.
// Pointer fields allow distinguishing between missing (nil -> default) and
// explicit values such as false or 0.
type GenerateRequest struct {
	Length    *int  `json:"length"`
	Lowercase *bool `json:"lowercase"`
	Uppercase *bool `json:"uppercase"`
	Numbers   *bool `json:"numbers"`
	Specials  *bool `json:"specials"`
	Hash      bool  `json:"hash"`
}

// GenerateResponse represents a generated password.
type GenerateResponse struct {
	Password    string   `json:"password"`
	Length      int      `json:"length"`
	EntropyBits float64  `json:"entropy_bits"`
	Classes     []string `json:"classes"`
	Hash        string   `json:"hash,omitempty"`
}

// BatchRequest asks for Count passwords sharing the same options.
type BatchRequest struct {
	GenerateRequest
	Count int `json:"count"`
}

// BatchResponse holds the passwords produced for a BatchRequest.
type BatchResponse struct {
	Passwords []GenerateResponse `json:"passwords"`
}

// VerifyRequest checks a password against an Argon2id PHC hash.
type VerifyRequest struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

// VerifyResponse reports whether the password matched.
type VerifyResponse struct {
	Match bool `json:"match"`
}

// ClassResponse describes one character class.
type ClassResponse struct {
	Name     string `json:"name"`
	Alphabet string `json:"alphabet"`
	Size     int    `json:"size"`
}
