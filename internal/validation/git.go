// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Git input validation patterns.
var (
	// gitBranchPattern allows alphanumeric, hyphens, underscores, slashes, and dots.
	gitBranchPattern = regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)

	// gitTagPattern allows semver-style tags such as "v1.2.3-rc.1+build.7".
	gitTagPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9/_.+-]*$`)

	// githubOwnerPattern matches GitHub user and organization names.
	githubOwnerPattern = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

	// gitRemoteURLPatterns for valid git remote URLs and local paths.
	gitRemoteURLPatterns = []*regexp.Regexp{
		// HTTPS URLs: https://github.com/user/repo.git or https://github.com/user/repo
		regexp.MustCompile(`^https://[a-zA-Z0-9.-]+/[a-zA-Z0-9_./-]+(?:\.git)?$`),
		// SSH URLs: git@github.com:user/repo.git
		regexp.MustCompile(`^git@[a-zA-Z0-9.-]+:[a-zA-Z0-9_./-]+(?:\.git)?$`),
		// SSH protocol: ssh://git@github.com/user/repo.git
		regexp.MustCompile(`^ssh://[a-zA-Z0-9@.-]+/[a-zA-Z0-9_./-]+(?:\.git)?$`),
		// file:// URLs: file:///path/to/repo
		regexp.MustCompile(`^file:///[a-zA-Z0-9_./-]+$`),
		// Unix absolute paths: /path/to/repo
		regexp.MustCompile(`^/[a-zA-Z0-9_./-]+$`),
		// Windows paths: C:\path\to\repo or C:/path/to/repo
		regexp.MustCompile(`^[a-zA-Z]:[/\\][a-zA-Z0-9_./\\-]+$`),
	}

	// Dangerous characters that should never appear in git inputs.
	// Note: null byte (\x00) is checked separately for a more specific error message
	dangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "{", "}", "<", ">", "!", "\n", "\r"}
)

// ValidateGitBranch validates a git branch name.
func ValidateGitBranch(branch string) error {
	if branch == "" {
		return nil // Empty is allowed, will use default
	}

	if len(branch) > 255 {
		return fmt.Errorf("branch name too long (max 255 characters)")
	}

	// Check for null bytes first (specific error message)
	if strings.ContainsRune(branch, '\x00') {
		return fmt.Errorf("branch name contains null byte")
	}

	// Check for dangerous characters
	for _, char := range dangerousChars {
		if strings.Contains(branch, char) {
			return fmt.Errorf("branch name contains invalid character: %q", char)
		}
	}

	if !gitBranchPattern.MatchString(branch) {
		return fmt.Errorf("invalid branch name format: must contain only alphanumeric characters, hyphens, underscores, slashes, and dots")
	}

	// Prevent path traversal in branch names
	if strings.Contains(branch, "..") {
		return fmt.Errorf("branch name cannot contain '..'")
	}

	return nil
}

// ValidateGitRemoteURL validates a git remote URL.
func ValidateGitRemoteURL(url string) error {
	if url == "" {
		return nil // Empty is allowed
	}

	if len(url) > 2048 {
		return fmt.Errorf("remote URL too long (max 2048 characters)")
	}

	// Check for null bytes first (specific error message)
	if strings.ContainsRune(url, '\x00') {
		return fmt.Errorf("remote URL contains null byte")
	}

	// Check for dangerous characters
	for _, char := range dangerousChars {
		if strings.Contains(url, char) {
			return fmt.Errorf("remote URL contains invalid character: %q", char)
		}
	}

	// Must match one of the valid patterns
	for _, pattern := range gitRemoteURLPatterns {
		if pattern.MatchString(url) {
			return nil
		}
	}

	return fmt.Errorf("invalid git remote URL format: must be HTTPS, SSH URL, or local path")
}

// validateRepoName checks the name half of an owner/name slug.
func validateRepoName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}

	if len(name) > 100 {
		return fmt.Errorf("repository name too long (max 100 characters)")
	}

	// Repository names should be alphanumeric with hyphens and underscores
	pattern := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)
	if !pattern.MatchString(name) {
		return fmt.Errorf("invalid repository name: must start with alphanumeric and contain only alphanumeric, hyphens, underscores, and dots")
	}

	return nil
}

// ValidateGitRemoteName validates a git remote name.
func ValidateGitRemoteName(name string) error {
	if name == "" {
		return fmt.Errorf("remote name cannot be empty")
	}

	if len(name) > 255 {
		return fmt.Errorf("remote name too long (max 255 characters)")
	}

	// Check for null bytes first (specific error message)
	if strings.ContainsRune(name, '\x00') {
		return fmt.Errorf("remote name contains null byte")
	}

	// Check for dangerous characters
	for _, char := range dangerousChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("remote name contains invalid character: %q", char)
		}
	}

	if !gitBranchPattern.MatchString(name) {
		return fmt.Errorf("invalid remote name format")
	}

	// Prevent path traversal in remote names
	if strings.Contains(name, "..") {
		return fmt.Errorf("remote name cannot contain '..'")
	}

	return nil
}

// ValidateGitTag validates a tag name before it is passed to git.
func ValidateGitTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: tag cannot be empty", ErrInvalidTag)
	}

	if len(tag) > 255 {
		return fmt.Errorf("%w: tag too long (max 255 characters)", ErrInvalidTag)
	}

	if strings.ContainsRune(tag, '\x00') {
		return fmt.Errorf("%w: tag contains null byte", ErrInvalidTag)
	}

	for _, char := range dangerousChars {
		if strings.Contains(tag, char) {
			return fmt.Errorf("%w: tag contains invalid character: %q", ErrInvalidTag, char)
		}
	}

	if !gitTagPattern.MatchString(tag) {
		return fmt.Errorf("%w: %q must start with an alphanumeric character and contain only alphanumeric characters, hyphens, underscores, slashes, plus signs, and dots", ErrInvalidTag, tag)
	}

	if strings.Contains(tag, "..") || strings.HasSuffix(tag, ".") || strings.HasSuffix(tag, "/") || strings.HasSuffix(tag, ".lock") {
		return fmt.Errorf("%w: %q is not a valid ref name", ErrInvalidTag, tag)
	}

	return nil
}

// ValidateRepoSlug validates an "owner/name" repository reference.
func ValidateRepoSlug(slug string) error {
	owner, name, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%w: %q must have the form owner/name", ErrInvalidRepo, slug)
	}

	if len(owner) > 39 || !githubOwnerPattern.MatchString(owner) {
		return fmt.Errorf("%w: invalid owner %q", ErrInvalidRepo, owner)
	}

	if err := validateRepoName(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRepo, err)
	}

	return nil
}
