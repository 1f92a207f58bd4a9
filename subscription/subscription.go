// Package subscription persists whether the user is subscribed. Subscribed
// users skip ads. The flag lives in the system keyring.
package subscription

import (
	"errors"
	"strconv"

	"github.com/mangomedia/mango/constant"
	"github.com/zalando/go-keyring"
)

const user = "subscription"

// Subscribed reads the flag. A flag that was never written is false.
func Subscribed() (bool, error) {
	value, err := keyring.Get(constant.Mango, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	subscribed, err := strconv.ParseBool(value)
	if err != nil {
		// a corrupt entry never grants a subscription
		return false, nil
	}
	return subscribed, nil
}

// Set writes the flag.
func Set(subscribed bool) error {
	return keyring.Set(constant.Mango, user, strconv.FormatBool(subscribed))
}

// Toggle flips the flag and returns the new value.
func Toggle() (bool, error) {
	current, err := Subscribed()
	if err != nil {
		return false, err
	}

	if err := Set(!current); err != nil {
		return current, err
	}
	return !current, nil
}

// Reset removes the flag from the keyring.
func Reset() error {
	err := keyring.Delete(constant.Mango, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
