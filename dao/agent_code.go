package dao

import (
	"crypto/rand"
	"math/big"
)

const (
	// AgentCodeLength is the length of generated referral codes
	AgentCodeLength = 5
	// MaxCodeAttempts bounds how many candidate codes one create or regenerate may try
	MaxCodeAttempts = 1000

	agentCodeLetters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	agentCodeDigits      = "0123456789"
	agentCodeLetterCount = 3
)

// CodeGenerator produces candidate agent codes
type CodeGenerator func() (string, error)

// GenerateAgentCode returns three uppercase letters and two digits in random order
func GenerateAgentCode() (string, error) {
	code := make([]byte, 0, AgentCodeLength)

	for i := 0; i < AgentCodeLength; i++ {
		charset := agentCodeDigits
		if i < agentCodeLetterCount {
			charset = agentCodeLetters
		}
		n, err := randomInt(len(charset))
		if err != nil {
			return "", err
		}
		code = append(code, charset[n])
	}

	// Fisher-Yates shuffle so letters and digits land anywhere
	for i := len(code) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		code[i], code[j] = code[j], code[i]
	}

	return string(code), nil
}

func randomInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
