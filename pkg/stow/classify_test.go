// SPDX-License-Identifier: Apache-2.0
package stow

import (
	"errors"
	"testing"
)

// Sample outputs below are captured from GNU Stow 2.3.1 runs.
func TestClassify(t *testing.T) {
	exitErr := errors.New("exit status 1")

	tests := []struct {
		name       string
		stdout     string
		stderr     string
		runErr     error
		wantStatus Status
		wantDetail string
	}{
		{
			name:       "empty output clean",
			wantStatus: StatusClean,
		},
		{
			// Restow plans the unstow phase first: a plain UNLINK, then a
			// reverting LINK for the same target.
			name:       "restow of correct links is clean",
			stderr:     "UNLINK: .gitconfig\nLINK: .gitconfig => ../dotfiles/git/.gitconfig (reverts previous action)\n",
			wantStatus: StatusClean,
		},
		{
			name:       "restow of multiple correct links is clean",
			stderr:     "UNLINK: .gitconfig\nUNLINK: .gitignore\nLINK: .gitconfig => ../dotfiles/git/.gitconfig (reverts previous action)\nLINK: .gitignore => ../dotfiles/git/.gitignore (reverts previous action)\n",
			wantStatus: StatusClean,
		},
		{
			name:       "revert pairs mixed with a genuinely new link is pending",
			stderr:     "UNLINK: .gitconfig\nLINK: .gitconfig => ../dotfiles/git/.gitconfig (reverts previous action)\nLINK: .config/git/ignore => ../../dotfiles/git/.config/git/ignore\n",
			wantStatus: StatusWouldLink,
			wantDetail: "LINK: .config/git/ignore => ../../dotfiles/git/.config/git/ignore",
		},
		{
			name:       "unlink without a matching revert stays pending",
			stderr:     "UNLINK: .gitconfig\nUNLINK: .zshrc\nLINK: .gitconfig => ../dotfiles/git/.gitconfig (reverts previous action)\n",
			wantStatus: StatusWouldLink,
			wantDetail: "UNLINK: .zshrc",
		},
		{
			name:       "pending link",
			stderr:     "LINK: .config/nvim => ../dotfiles/nvim/.config/nvim\n",
			wantStatus: StatusWouldLink,
			wantDetail: "LINK: .config/nvim => ../dotfiles/nvim/.config/nvim",
		},
		{
			name:       "pending mkdir reported first",
			stderr:     "MKDIR: .config/alacritty\nLINK: .config/alacritty/alacritty.toml => ../../dotfiles/alacritty/.config/alacritty/alacritty.toml\n",
			wantStatus: StatusWouldLink,
			wantDetail: "MKDIR: .config/alacritty",
		},
		{
			name:       "pending unlink",
			stdout:     "UNLINK: .zshrc\n",
			wantStatus: StatusWouldLink,
			wantDetail: "UNLINK: .zshrc",
		},
		{
			name:       "conflict surfaces first error line",
			stderr:     "WARNING! stowing zsh would cause conflicts:\n  * existing target is neither a symlink nor a directory: .zshrc\nAll operations aborted.\n",
			runErr:     exitErr,
			wantStatus: StatusConflict,
			wantDetail: "WARNING! stowing zsh would cause conflicts:",
		},
		{
			name:       "nonzero exit with empty output falls back to exec error",
			runErr:     exitErr,
			wantStatus: StatusConflict,
			wantDetail: "exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.stdout, tt.stderr, tt.runErr)
			if got.Status != tt.wantStatus {
				t.Errorf("classify() status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Detail != tt.wantDetail {
				t.Errorf("classify() detail = %q, want %q", got.Detail, tt.wantDetail)
			}
		})
	}
}
