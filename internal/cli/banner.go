// internal/cli/banner.go
package cli

// Banner is printed once at start-up and heads the usage text.
const Banner = `               _              _        _                  __ _ _ _              
     _ __  ___(_)___ ___ _ _ | |_  ___(_)_ __  ___ _ _   / _(_) | |_ ___ _ _    
    | '  \/ -_) (_-</ -_) ' \| ' \/ -_) | '  \/ -_) '_| |  _| | |  _/ -_) '_|   
    |_|_|_\___|_/__/\___|_||_|_||_\___|_|_|_|_\___|_|   |_| |_|_|\__\___|_|     
     Filter molecules for substructures able to form a Meisenheimer complex.    
                                   v. alpha                                     `
