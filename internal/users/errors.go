package users

import "errors"

var (
	ErrUserNotFound             = errors.New("User not found")
	ErrUsersCannotModifyOwnRole = errors.New("Users cannot modify their own role")
	ErrMustKeepOneAdmin         = errors.New("At least one admin account must remain")
	ErrUnknownRole              = errors.New("Unknown role")
	ErrCannotRemoveYourself     = errors.New("You cannot remove your own account")
)
