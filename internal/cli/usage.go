package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `travel-manager - Multi-worker trip planning session

USAGE
  travel-manager [flags]

FLAGS
  Session:
    --mode <mode>                          auto, interactive, blockchain-auto, blockchain-chat,
                                           blockchain-payments (default: interactive)
    --budget <int>                         Starting trip budget (default: 1000)
    --max-cycles <int>                     Maximum decision cycles (default: 50)

  Planner:
    --planner <anthropic|rules>            Decision source for autonomous modes (default: anthropic)
    --model <model>                        Anthropic model (default: claude-sonnet-4-5)

  Payments:
    --wallet-file <path>                   Wallet identity file (default: wallet_data.txt)
    --network <base-sepolia|base-mainnet>  Payment network (default: base-sepolia)
    --pay-token <symbol>                   Token used to pay for bookings (default: USDC)

  Files:
    --state-dir <path>                     Session state and journal directory (default: .travel-manager)
    --brief <path>                         YAML trip brief (default: built-in Tokyo brief)
    --config <path>                        Path to additional config file

  Journal:
    --journal-driver <sqlite|postgres>     Journal database (default: sqlite)
    --journal-dsn <dsn>                    Journal DSN (default: <state-dir>/journal.db)
    --no-journal                           Disable the journal database

  Feature Toggles:
    -v, --verbose                          Log raw action payloads and debug output
    --no-confirm                           Skip action confirmation in interactive modes

  Session Management:
    --resume                               Resume from the last interrupted session
    --clean                                Delete saved session state and start fresh
    --status                               Show session status and exit

  Help & Version:
    -h, --help                             Show this help text
    --version                              Show version, commit, build date

ENVIRONMENT
  ANTHROPIC_API_KEY                        Required when --planner is anthropic

EXIT CODES
  0   Success              Trip terminated (complete, out of budget or energy) or user quit
  1   Error                Invalid arguments, missing credentials, setup failure
  2   MaxCycles            Cycle limit reached before the trip terminated
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Plan interactively, picking each worker action from a menu
  travel-manager

  # Let the rules planner run the whole trip without an API key
  travel-manager --mode auto --planner rules

  # Autonomous planning with crypto payments on the testnet
  travel-manager --mode blockchain-auto --pay-token USDC

  # Wallet operations only
  travel-manager --mode blockchain-payments

  # Resume an interrupted session, or inspect it
  travel-manager --resume
  travel-manager --status
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
