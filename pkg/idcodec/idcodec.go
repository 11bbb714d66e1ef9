// Package idcodec cifra y descifra los IDs internos que se exponen al cliente.
// Usa AES en modo ECB con padding PKCS#7 sobre la representación decimal del ID
// y codifica el resultado en Base64 URL-safe sin padding. El cifrado es
// determinista: el mismo ID con la misma clave produce siempre el mismo token,
// lo que permite URLs estables y lookups idempotentes.
package idcodec

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrDecode token malformado, manipulado o que no resuelve a un ID positivo.
	ErrDecode = errors.New("token de ID inválido")
	// ErrInvalidID el ID a cifrar debe ser positivo.
	ErrInvalidID = errors.New("el ID debe ser positivo")
)

// Codec cifra/descifra IDs con una clave simétrica fija del proceso.
// Es inmutable después de construido; seguro para uso concurrente.
type Codec struct {
	block cipher.Block
}

// New construye el codec. La clave debe ser de 16, 24 o 32 bytes
// (AES-128/192/256); cualquier otra longitud es un error de configuración
// y la aplicación no debe arrancar.
func New(key []byte) (*Codec, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("la clave de cifrado debe ser de 16, 24 o 32 bytes; tiene %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crear cifrador AES: %w", err)
	}
	return &Codec{block: block}, nil
}

// Encode cifra un ID interno y devuelve el token externo.
// Un ID cero se trata como "sin valor" y devuelve cadena vacía (espejo de
// Decode con cadena vacía); un ID negativo es un error del caller.
func (c *Codec) Encode(id int64) (string, error) {
	if id == 0 {
		return "", nil
	}
	if id < 0 {
		return "", ErrInvalidID
	}
	plain := pkcs7Pad([]byte(strconv.FormatInt(id, 10)), aes.BlockSize)
	out := make([]byte, len(plain))
	for i := 0; i < len(plain); i += aes.BlockSize {
		c.block.Encrypt(out[i:i+aes.BlockSize], plain[i:i+aes.BlockSize])
	}
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Decode descifra un token externo y devuelve el ID interno.
// Cadena vacía devuelve 0 sin error (espejo de Encode(0)). Cualquier token
// malformado (alfabeto, longitud, padding) o que no descifre a un entero
// positivo devuelve ErrDecode.
func (c *Codec) Decode(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("%w: base64", ErrDecode)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return 0, fmt.Errorf("%w: longitud", ErrDecode)
	}
	plain := make([]byte, len(raw))
	for i := 0; i < len(raw); i += aes.BlockSize {
		c.block.Decrypt(plain[i:i+aes.BlockSize], raw[i:i+aes.BlockSize])
	}
	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return 0, fmt.Errorf("%w: padding", ErrDecode)
	}
	id, err := strconv.ParseInt(string(plain), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: contenido", ErrDecode)
	}
	return id, nil
}

// IsValid indica si el token descifra a un ID positivo. Nunca propaga errores;
// los handlers la usan para rechazar tokens malformados con un 404 genérico
// antes de tocar la base de datos.
func (c *Codec) IsValid(token string) bool {
	id, err := c.Decode(token)
	return err == nil && id > 0
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	padded := make([]byte, len(b)+n)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, errors.New("longitud inválida")
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, errors.New("padding inválido")
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.New("padding inválido")
		}
	}
	return b[:len(b)-n], nil
}
